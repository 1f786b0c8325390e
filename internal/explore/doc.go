// Package explore is the generic graph-exploration engine. Graphs are never
// materialised up front: they are defined implicitly by a successor function
// and expanded on demand.
//
// Two entry points share the same breadth-first round structure:
//
//   - Build runs a bounded construction and returns the expanded vertex set
//     and every edge seen on the way.
//   - Graph keeps a memoized adjacency cache across calls and offers Traverse,
//     a bounded walk with pre-visit, post-visit and edge hooks.
//
// A round drains exactly the vertices that were queued when it started; the
// number of rounds is the distance from the start vertex. Vertices only need
// to be comparable; the chord explorer uses triad.Triad, whose equality is
// structural over its sorted pitches.
package explore
