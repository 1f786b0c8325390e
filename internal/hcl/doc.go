// Package hcl loads session files written in HCL into the format-agnostic
// config.Model.
//
// A session may be split across files and directories. Top-level blocks are
// output, sounds, explore, progression and locals. Expressions can use the
// values declared in locals (local.<name>) and a small set of functions: abs,
// concat, format, lower, max, min and upper.
package hcl
