package concise

import (
	"github.com/hupe1980/concise/internal/queue"
)

// FastUnion returns the union of all sets.
//
// It repeatedly merges the two sets with the smallest encoded size, which
// keeps the total merge work close to minimal. The inputs are not modified.
func FastUnion[E Encoding](sets ...*Set[E]) *Set[E] {
	switch len(sets) {
	case 0:
		return New[E]()
	case 1:
		return sets[0].Clone()
	}

	pq := queue.NewMin[*Set[E]](len(sets))
	for _, s := range sets {
		pq.Push(s, s.SizeInBytes())
	}

	for pq.Len() > 2 {
		a, _ := pq.Pop()
		b, _ := pq.Pop()
		u := a.Or(b)
		pq.Push(u, u.SizeInBytes())
	}

	a, _ := pq.Pop()
	b, _ := pq.Pop()
	return a.Or(b)
}
