// Package scheduler turns notes into time-ordered MIDI actions and plays them.
//
// Every scheduled note becomes two actions: an attack at its start time and a
// release at start+duration-Epsilon. Actions fire in ascending (time, priority)
// order, with insertion order breaking remaining ties. Releases carry the
// lower priority value, so on an exact tie a note ending at t is silenced
// before a note starting at t sounds.
//
// Run paces the actions against a Clock and blocks the caller until the last
// one has fired. The scheduler holds no locks; schedule everything first, then
// call Run from a single goroutine.
package scheduler
