// Package queue provides a binary heap ordered by an integer priority.
package queue

// Item is a value with its priority.
type Item[T any] struct {
	Value    T
	Priority int
}

// PriorityQueue is a binary min-heap of Items.
// Value-based storage keeps items contiguous.
type PriorityQueue[T any] struct {
	items []Item[T]
}

// NewMin creates a queue that pops the lowest priority first.
func NewMin[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		items: make([]Item[T], 0, capacity),
	}
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Push inserts value with the given priority.
func (pq *PriorityQueue[T]) Push(value T, priority int) {
	pq.items = append(pq.items, Item[T]{Value: value, Priority: priority})
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the first value.
func (pq *PriorityQueue[T]) Pop() (T, bool) {
	n := len(pq.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[T]{} // release the reference
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root.Value, true
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	return pq.items[i].Priority < pq.items[j].Priority
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
