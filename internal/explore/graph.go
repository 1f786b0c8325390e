package explore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/triadgrid/internal/ctxlog"
)

// ErrNegativeDistance is returned by Traverse for a distance below zero.
var ErrNegativeDistance = errors.New("traversal distance must not be negative")

// EdgePolicy decides how often the edge hook may fire for the same pair.
type EdgePolicy int

const (
	// EdgeUntilProcessed fires the edge hook for every discovery of (u, v)
	// as long as v has not been post-processed yet.
	EdgeUntilProcessed EdgePolicy = iota
	// EdgeOncePerPair additionally suppresses repeats of the same (u, v)
	// pair within one traversal.
	EdgeOncePerPair
)

// Hooks are the optional callbacks run during Traverse. Any of them may be nil.
type Hooks[V comparable] struct {
	// PreVisit runs before a vertex is expanded.
	PreVisit func(v V)
	// PostVisit runs after all successors of a vertex were examined.
	PostVisit func(v V)
	// Edge runs for a discovered edge whose destination is not yet post-processed.
	Edge func(from, to V)
}

// Option configures a Graph.
type Option[V comparable] func(*Graph[V])

// WithHooks installs all three hooks at once.
func WithHooks[V comparable](h Hooks[V]) Option[V] {
	return func(g *Graph[V]) { g.hooks = h }
}

// WithPreVisit installs the pre-visit hook.
func WithPreVisit[V comparable](fn func(V)) Option[V] {
	return func(g *Graph[V]) { g.hooks.PreVisit = fn }
}

// WithPostVisit installs the post-visit hook.
func WithPostVisit[V comparable](fn func(V)) Option[V] {
	return func(g *Graph[V]) { g.hooks.PostVisit = fn }
}

// WithEdge installs the edge hook.
func WithEdge[V comparable](fn func(from, to V)) Option[V] {
	return func(g *Graph[V]) { g.hooks.Edge = fn }
}

// WithEdgePolicy selects the edge hook policy. The default is EdgeUntilProcessed.
func WithEdgePolicy[V comparable](p EdgePolicy) Option[V] {
	return func(g *Graph[V]) { g.edgePolicy = p }
}

// Graph is a lazily expanded directed graph defined by a successor function.
// Successor lists are computed on first request and cached for the lifetime
// of the Graph.
//
// A Graph is not safe for concurrent use; callers must serialise access.
type Graph[V comparable] struct {
	successors SuccessorFunc[V]
	hooks      Hooks[V]
	edgePolicy EdgePolicy
	adjacency  map[V][]V
	order      []V // cache insertion order, for deterministic Edges
}

// New creates an empty Graph backed by the given successor function.
func New[V comparable](successors SuccessorFunc[V], opts ...Option[V]) *Graph[V] {
	g := &Graph[V]{
		successors: successors,
		adjacency:  make(map[V][]V),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Successors returns a copy of the successor list of v, computing and caching
// it on first request. A failing successor function caches nothing.
func (g *Graph[V]) Successors(v V) ([]V, error) {
	succ, err := g.lookup(v)
	if err != nil {
		return nil, err
	}
	return append([]V(nil), succ...), nil
}

// lookup returns the cached list itself. Callers must not modify it.
func (g *Graph[V]) lookup(v V) ([]V, error) {
	if succ, ok := g.adjacency[v]; ok {
		return succ, nil
	}
	succ, err := g.successors(v)
	if err != nil {
		return nil, err
	}
	succ = append([]V(nil), succ...)
	g.adjacency[v] = succ
	g.order = append(g.order, v)
	return succ, nil
}

// Cached reports whether v's successors have been computed.
func (g *Graph[V]) Cached(v V) bool {
	_, ok := g.adjacency[v]
	return ok
}

// Len returns the number of vertices with a cached successor list.
func (g *Graph[V]) Len() int {
	return len(g.adjacency)
}

// Traverse walks breadth-first from start and returns every vertex within
// distance hops, each exactly once, in round order. Distance zero visits only
// start, which still runs its hooks and fills its cache entry.
//
// A successor error aborts the walk and is returned wrapped; hooks already
// run are not undone.
func (g *Graph[V]) Traverse(ctx context.Context, start V, distance int) ([]V, error) {
	if distance < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDistance, distance)
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Traverse: starting.", "start", start, "distance", distance)

	var traversed []V
	seen := map[V]struct{}{start: {}}
	processed := make(map[V]struct{})
	var firedEdges map[Edge[V]]struct{}
	if g.edgePolicy == EdgeOncePerPair {
		firedEdges = make(map[Edge[V]]struct{})
	}

	q := newQueue(start)
	for round := 0; q.Len() > 0 && round <= distance; round++ {
		roundSize := q.Len()
		for i := 0; i < roundSize; i++ {
			u := q.Pop()
			traversed = append(traversed, u)

			if g.hooks.PreVisit != nil {
				g.hooks.PreVisit(u)
			}
			successors, err := g.lookup(u)
			if err != nil {
				return nil, fmt.Errorf("explore: successors of %v: %w", u, err)
			}
			processed[u] = struct{}{}

			for _, v := range successors {
				g.fireEdge(u, v, processed, firedEdges)
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					q.Push(v)
				}
			}
			if g.hooks.PostVisit != nil {
				g.hooks.PostVisit(u)
			}
		}
		logger.Debug("Traverse: round complete.", "round", round, "visited", len(traversed), "frontier", q.Len())
	}

	logger.Debug("Traverse: finished.", "visited", len(traversed), "cached", len(g.adjacency))
	return traversed, nil
}

func (g *Graph[V]) fireEdge(u, v V, processed map[V]struct{}, fired map[Edge[V]]struct{}) {
	if g.hooks.Edge == nil {
		return
	}
	if _, done := processed[v]; done {
		return
	}
	if fired != nil {
		e := Edge[V]{From: u, To: v}
		if _, dup := fired[e]; dup {
			return
		}
		fired[e] = struct{}{}
	}
	g.hooks.Edge(u, v)
}

// edges lists every cached edge, grouped by source in the order sources were
// first expanded.
func (g *Graph[V]) edges() []Edge[V] {
	var edges []Edge[V]
	for _, u := range g.order {
		for _, v := range g.adjacency[u] {
			edges = append(edges, Edge[V]{From: u, To: v})
		}
	}
	return edges
}

// SortedEdges lists every cached edge ordered by less on (From, To).
func (g *Graph[V]) SortedEdges(less func(a, b V) bool) []Edge[V] {
	edges := g.edges()
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return less(a.From, b.From)
		}
		return less(a.To, b.To)
	})
	return edges
}
