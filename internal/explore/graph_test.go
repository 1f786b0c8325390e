package explore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/triadgrid/internal/triad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSuccessors wraps an adjacency table and counts calls per vertex.
type countingSuccessors struct {
	adj   map[int][]int
	calls map[int]int
}

func newCounting(adj map[int][]int) *countingSuccessors {
	return &countingSuccessors{adj: adj, calls: make(map[int]int)}
}

func (c *countingSuccessors) next(v int) ([]int, error) {
	c.calls[v]++
	return c.adj[v], nil
}

// eventLog records hook calls in order.
type eventLog struct {
	events []string
}

func (l *eventLog) hooks() Hooks[int] {
	return Hooks[int]{
		PreVisit:  func(v int) { l.events = append(l.events, fmt.Sprintf("pre %d", v)) },
		PostVisit: func(v int) { l.events = append(l.events, fmt.Sprintf("post %d", v)) },
		Edge:      func(u, v int) { l.events = append(l.events, fmt.Sprintf("edge %d->%d", u, v)) },
	}
}

func TestSuccessors_Memoized(t *testing.T) {
	calls := 0
	g := New(func(tr triad.Triad) ([]triad.Triad, error) {
		calls++
		up, err := tr.Transpose(0, 1)
		return []triad.Triad{up}, err
	})
	start := triad.New(36, 48, 60)

	first, err := g.Successors(start)
	require.NoError(t, err)
	second, err := g.Successors(triad.New(60, 36, 48))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, g.Cached(start))
	assert.Equal(t, 1, g.Len())
}

func TestSuccessors_ErrorNotCached(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	g := New(func(v int) ([]int, error) {
		if fail {
			return nil, boom
		}
		return []int{v + 1}, nil
	})

	_, err := g.Successors(1)
	require.ErrorIs(t, err, boom)
	assert.False(t, g.Cached(1))

	fail = false
	succ, err := g.Successors(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, succ)
}

func TestSuccessors_CallerCannotChangeCache(t *testing.T) {
	adj := map[int][]int{0: {1, 2}, 1: nil, 2: nil}
	g := New(newCounting(adj).next)

	succ, err := g.Successors(0)
	require.NoError(t, err)
	succ[0] = 99
	adj[0][1] = 98

	visited, err := g.Traverse(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, visited)

	again, err := g.Successors(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, again)
}

func TestTraverse_ZeroDistance(t *testing.T) {
	c := newCounting(map[int][]int{0: {1, 2}, 1: {3}})
	log := &eventLog{}
	g := New(c.next, WithHooks(log.hooks()))

	visited, err := g.Traverse(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, visited)
	assert.True(t, g.Cached(0))
	assert.False(t, g.Cached(1))
	assert.Equal(t, []string{"pre 0", "edge 0->1", "edge 0->2", "post 0"}, log.events)
}

func TestTraverse_RoundOrder(t *testing.T) {
	//      0
	//     / \
	//    1   2
	//    |\ /|
	//    3 4 5
	//        |
	//        6
	adj := map[int][]int{0: {1, 2}, 1: {3, 4}, 2: {4, 5}, 5: {6}}
	g := New(newCounting(adj).next)

	visited, err := g.Traverse(context.Background(), 0, 2)
	require.NoError(t, err)

	require.Len(t, visited, 6)
	assert.Equal(t, 0, visited[0])
	assert.ElementsMatch(t, []int{1, 2}, visited[1:3])
	assert.ElementsMatch(t, []int{3, 4, 5}, visited[3:6])
	assert.NotContains(t, visited, 6)
	// The last round expands its vertices, so 5's successors are cached.
	assert.True(t, g.Cached(5))
	assert.False(t, g.Cached(6))
}

func TestTraverse_EachVertexOnce(t *testing.T) {
	// A cycle with a chord: 0 -> 1 -> 2 -> 0, 0 -> 2.
	adj := map[int][]int{0: {1, 2}, 1: {2}, 2: {0}}
	c := newCounting(adj)
	g := New(c.next)

	visited, err := g.Traverse(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2}, visited)
	for v, n := range c.calls {
		assert.Equal(t, 1, n, "vertex %d expanded more than once", v)
	}
}

func TestTraverse_MemoizedAcrossCalls(t *testing.T) {
	adj := map[int][]int{0: {1}, 1: {2}, 2: {3}}
	c := newCounting(adj)
	g := New(c.next)
	ctx := context.Background()

	_, err := g.Traverse(ctx, 0, 2)
	require.NoError(t, err)
	_, err = g.Traverse(ctx, 0, 3)
	require.NoError(t, err)
	_, err = g.Traverse(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 3: 1}, c.calls)
}

func TestTraverse_EdgeHookNeverTargetsPostProcessedVertex(t *testing.T) {
	adj := map[int][]int{
		0: {1, 2, 0},
		1: {0, 2, 3},
		2: {1, 3, 4},
		3: {4, 0},
		4: {2},
	}
	log := &eventLog{}
	g := New(newCounting(adj).next, WithHooks(log.hooks()))

	_, err := g.Traverse(context.Background(), 0, 5)
	require.NoError(t, err)

	postDone := map[int]bool{}
	edges := 0
	for _, ev := range log.events {
		var a, b int
		if n, _ := fmt.Sscanf(ev, "post %d", &a); n == 1 {
			postDone[a] = true
			continue
		}
		if n, _ := fmt.Sscanf(ev, "edge %d->%d", &a, &b); n == 2 {
			edges++
			assert.False(t, postDone[b], "edge %d->%d fired after %d was post-processed", a, b, b)
		}
	}
	assert.Positive(t, edges)
	assert.NotContains(t, log.events, "edge 0->0", "self edge targets a vertex that is already processed")
}

func TestTraverse_HookOrderPerVertex(t *testing.T) {
	adj := map[int][]int{0: {1}, 1: {2}}
	log := &eventLog{}
	g := New(newCounting(adj).next, WithHooks(log.hooks()))

	_, err := g.Traverse(context.Background(), 0, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pre 0", "edge 0->1", "post 0",
		"pre 1", "edge 1->2", "post 1",
	}, log.events)
}

func TestTraverse_EdgePolicy(t *testing.T) {
	// 1 and 2 both lead to 3; 1 lists 3 twice.
	adj := map[int][]int{0: {1, 2}, 1: {3, 3}, 2: {3}}

	count := func(policy EdgePolicy) map[Edge[int]]int {
		fired := map[Edge[int]]int{}
		g := New(newCounting(adj).next,
			WithEdge(func(u, v int) { fired[Edge[int]{From: u, To: v}]++ }),
			WithEdgePolicy[int](policy),
		)
		_, err := g.Traverse(context.Background(), 0, 2)
		require.NoError(t, err)
		return fired
	}

	untilProcessed := count(EdgeUntilProcessed)
	assert.Equal(t, 2, untilProcessed[Edge[int]{From: 1, To: 3}])
	assert.Equal(t, 1, untilProcessed[Edge[int]{From: 2, To: 3}])

	oncePerPair := count(EdgeOncePerPair)
	assert.Equal(t, 1, oncePerPair[Edge[int]{From: 1, To: 3}])
	assert.Equal(t, 1, oncePerPair[Edge[int]{From: 2, To: 3}])
}

func TestTraverse_IndividualHookOptions(t *testing.T) {
	var pre, post []int
	g := New(newCounting(map[int][]int{0: {1}}).next,
		WithPreVisit(func(v int) { pre = append(pre, v) }),
		WithPostVisit(func(v int) { post = append(post, v) }),
	)
	_, err := g.Traverse(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, pre)
	assert.Equal(t, []int{0, 1}, post)
}

func TestTraverse_Errors(t *testing.T) {
	t.Run("negative distance", func(t *testing.T) {
		g := New(newCounting(nil).next)
		_, err := g.Traverse(context.Background(), 0, -1)
		assert.ErrorIs(t, err, ErrNegativeDistance)
	})

	t.Run("successor failure aborts", func(t *testing.T) {
		boom := errors.New("no such scale")
		var post []int
		g := New(func(v int) ([]int, error) {
			if v == 1 {
				return nil, boom
			}
			return []int{v + 1}, nil
		}, WithPostVisit(func(v int) { post = append(post, v) }))

		visited, err := g.Traverse(context.Background(), 0, 5)
		require.ErrorIs(t, err, boom)
		assert.Nil(t, visited)
		assert.Equal(t, []int{0}, post)
	})
}

func TestSortedEdges(t *testing.T) {
	adj := map[int][]int{0: {2, 1}, 1: {2}, 2: nil}
	g := New(newCounting(adj).next)
	_, err := g.Traverse(context.Background(), 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []Edge[int]{{0, 2}, {0, 1}, {1, 2}}, g.edges(), "expansion order")
	sorted := g.SortedEdges(func(a, b int) bool { return a < b })
	assert.Equal(t, []Edge[int]{{0, 1}, {0, 2}, {1, 2}}, sorted)
}
