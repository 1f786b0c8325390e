package explore

import (
	"context"
	"fmt"

	"github.com/specialistvlad/triadgrid/internal/ctxlog"
)

// SuccessorFunc maps a vertex to the vertices reachable from it in one move.
// It must be deterministic for memoization to be correct. An empty result ends
// that branch of the exploration.
type SuccessorFunc[V comparable] func(V) ([]V, error)

// Edge is a directed pair of vertices. Edges are comparable, so edge sets have
// set semantics.
type Edge[V comparable] struct {
	From V
	To   V
}

// Result is the outcome of a bounded construction.
type Result[V comparable] struct {
	// Vertices holds every vertex that was dequeued and expanded. A vertex
	// discovered in the last round but never expanded appears only as an
	// edge destination.
	Vertices map[V]struct{}
	// Edges holds every (current, successor) pair seen during expansion,
	// including edges back to visited or already-queued vertices.
	Edges map[Edge[V]]struct{}
	// Rounds is the number of breadth-first rounds actually run.
	Rounds int
}

// HasVertex reports whether v was expanded.
func (r *Result[V]) HasVertex(v V) bool {
	_, ok := r.Vertices[v]
	return ok
}

// HasEdge reports whether the edge from -> to was recorded.
func (r *Result[V]) HasEdge(from, to V) bool {
	_, ok := r.Edges[Edge[V]{From: from, To: to}]
	return ok
}

// Discovered returns the expanded vertices plus every edge endpoint, i.e. all
// vertices within steps hops of the initial vertex.
func (r *Result[V]) Discovered() map[V]struct{} {
	out := make(map[V]struct{}, len(r.Vertices)+len(r.Edges))
	for v := range r.Vertices {
		out[v] = struct{}{}
	}
	for e := range r.Edges {
		out[e.From] = struct{}{}
		out[e.To] = struct{}{}
	}
	return out
}

// Build expands the graph breadth-first from init for at most steps rounds.
//
// Each round drains exactly the vertices that were queued when the round
// began; vertices enqueued during the round wait for the next one. A
// successor is enqueued only if it has been neither expanded nor queued, but
// its edge is always recorded. The first successor error aborts the build.
func Build[V comparable](ctx context.Context, init V, next SuccessorFunc[V], steps int) (*Result[V], error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting bounded construction.", "steps", steps)

	res := &Result[V]{
		Vertices: make(map[V]struct{}),
		Edges:    make(map[Edge[V]]struct{}),
	}
	q := newQueue(init)

	for q.Len() > 0 && steps > 0 {
		roundSize := q.Len()
		for i := 0; i < roundSize; i++ {
			curr := q.Pop()
			res.Vertices[curr] = struct{}{}

			successors, err := next(curr)
			if err != nil {
				return nil, fmt.Errorf("explore: successors of %v: %w", curr, err)
			}
			for _, succ := range successors {
				res.Edges[Edge[V]{From: curr, To: succ}] = struct{}{}
				if _, visited := res.Vertices[succ]; visited || q.Contains(succ) {
					continue
				}
				q.Push(succ)
			}
		}
		steps--
		res.Rounds++
		logger.Debug("Build: round complete.", "round", res.Rounds, "vertices", len(res.Vertices), "edges", len(res.Edges), "frontier", q.Len())
	}

	logger.Debug("Build: construction finished.", "vertices", len(res.Vertices), "edges", len(res.Edges), "rounds", res.Rounds)
	return res, nil
}
