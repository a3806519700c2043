package concise

import (
	"iter"
	"math/bits"

	"github.com/hupe1980/concise/internal/word"
)

// Iterator yields the members of a set in ascending order.
//
// It is single use; create a new one to start over. The set must not be
// modified while iterating.
type Iterator[E Encoding] struct {
	words *wordIterator[E]
	// location is the block index of value
	location int
	// value holds the bits of the current block not yet returned
	value uint32
	// nextBlock is the block index where the current unit starts
	nextBlock int
}

// Iterator returns a forward iterator over the members of s.
func (s *Set[E]) Iterator() *Iterator[E] {
	return &Iterator[E]{words: newWordIterator(s)}
}

// HasNext reports whether Next has another member to return.
func (it *Iterator[E]) HasNext() bool {
	return it.value != 0 || it.load()
}

// Next returns the next member. It must only be called after HasNext
// returned true.
func (it *Iterator[E]) Next() uint32 {
	if it.value == 0 && !it.load() {
		panic("concise: Next called on exhausted iterator")
	}
	offset := bits.TrailingZeros32(it.value)
	it.value &= it.value - 1
	return uint32(it.location*word.BlockBits + offset)
}

// load moves to the next block holding at least one member.
func (it *Iterator[E]) load() bool {
	w := it.words
	for !w.exhausted() {
		switch {
		case w.isLiteral:
			it.location = it.nextBlock
			it.value = word.LiteralBits(w.word)
			it.nextBlock++
			w.next()
			if it.value != 0 {
				return true
			}
		case word.IsZeroRun(w.word):
			it.nextBlock += w.count
			w.advance(w.count)
		default:
			// one block of a one run; the rest stays queued
			it.location = it.nextBlock
			it.value = word.AllOnesWithoutMSB
			it.nextBlock++
			w.advance(1)
			return true
		}
	}
	return false
}

// All returns an iterator over the members of s in ascending order.
func (s *Set[E]) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToSlice returns the members of s in ascending order.
func (s *Set[E]) ToSlice() []uint32 {
	out := make([]uint32, 0, s.Size())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}
