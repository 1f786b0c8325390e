package explore

// queue is a FIFO work queue that also answers "is this item currently
// queued" in O(1). Rounds are counted by snapshotting Len before draining.
type queue[V comparable] struct {
	items  []V
	head   int
	queued map[V]int
}

func newQueue[V comparable](seed ...V) *queue[V] {
	q := &queue[V]{queued: make(map[V]int)}
	for _, v := range seed {
		q.Push(v)
	}
	return q
}

func (q *queue[V]) Len() int {
	return len(q.items) - q.head
}

func (q *queue[V]) Push(v V) {
	q.items = append(q.items, v)
	q.queued[v]++
}

func (q *queue[V]) Pop() V {
	v := q.items[q.head]
	var zero V
	q.items[q.head] = zero
	q.head++
	if q.queued[v]--; q.queued[v] == 0 {
		delete(q.queued, v)
	}
	// Compact once the consumed prefix dominates the backing array.
	if q.head > 32 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return v
}

func (q *queue[V]) Contains(v V) bool {
	_, ok := q.queued[v]
	return ok
}
