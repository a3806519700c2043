package concise

import (
	"github.com/hupe1980/concise/internal/word"
)

// wordIterator exposes the units of a set one at a time. A CONCISE run with
// a flipped bit is exposed as a literal for its first block followed by a
// plain run for the rest.
type wordIterator[E Encoding] struct {
	set *Set[E]
	// index of the physical word backing the current unit
	index int
	// word is the literal pattern, or the raw run word
	word uint32
	// count is the number of blocks left in the current unit
	count     int
	isLiteral bool
}

func newWordIterator[E Encoding](s *Set[E]) *wordIterator[E] {
	it := &wordIterator[E]{set: s, index: -1}
	it.next()
	return it
}

// exhausted reports whether every unit has been consumed.
func (it *wordIterator[E]) exhausted() bool {
	return it.index >= it.set.n
}

// advance consumes c blocks of the current unit.
func (it *wordIterator[E]) advance(c int) bool {
	it.count -= c
	if it.count == 0 {
		return it.next()
	}
	return true
}

// next moves to the following unit. It returns false once exhausted.
func (it *wordIterator[E]) next() bool {
	var enc E
	if enc.flips() && it.isLiteral && it.count > 1 {
		// the rest of a run whose first block was exposed as a literal
		it.count--
		it.isLiteral = false
		it.word = word.WithoutFlippedBit(it.set.words[it.index])
		return true
	}

	it.index++
	if it.index >= it.set.n {
		return false
	}

	w := it.set.words[it.index]
	it.word = w
	it.isLiteral = word.IsLiteral(w)
	if it.isLiteral {
		it.count = 1
		return true
	}

	it.count = word.Blocks(w, enc.runMask())
	if enc.flips() && word.HasFlippedBit(w) {
		it.isLiteral = true
		it.word = word.FirstBlock(w)
	}
	return true
}

// toLiteral renders one block of the current run as a literal.
func (it *wordIterator[E]) toLiteral() uint32 {
	return word.Fill(it.word)
}

// flush appends every unit not yet consumed to res.
func (it *wordIterator[E]) flush(res *Set[E]) bool {
	if it.exhausted() {
		return false
	}
	for {
		if it.isLiteral {
			res.appendLiteral(it.word)
		} else {
			res.appendFill(it.count, it.word)
		}
		if !it.next() {
			return true
		}
	}
}

// remainingCount returns the number of set bits not yet consumed.
func (it *wordIterator[E]) remainingCount() int {
	if it.exhausted() {
		return 0
	}
	n := 0
	for {
		switch {
		case it.isLiteral:
			n += word.Popcount(it.word)
		case word.IsOneRun(it.word):
			n += word.BlockBits * it.count
		}
		if !it.next() {
			return n
		}
	}
}
