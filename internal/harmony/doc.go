// Package harmony holds the musical rules that define the chord graph:
// successor functions over triads (voice transposition, whole-chord shifts,
// scale-degree steps), the scale table they read from, and Walk, which picks
// a playable progression out of an explored graph.
package harmony
