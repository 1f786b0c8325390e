// Package config defines the format-agnostic session model along with the
// Loader interface that fills it from files.
//
// config.Model is the single source of truth for the app package. Concrete
// loaders live in separate packages: internal/hcl for .hcl sessions and
// internal/yamlcfg for .yaml sessions.
package config
