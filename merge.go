package concise

import (
	"github.com/hupe1980/concise/internal/word"
)

// operator describes one binary set operation.
type operator struct {
	// literal combines two literals. Applied to two raw run words and masked
	// with word.SequenceBit it yields the fill type of the combined run.
	literal func(a, b uint32) uint32
	// keepLeft and keepRight flush the unread remainder of the
	// respective operand into the result.
	keepLeft  bool
	keepRight bool
	// maxLast marks operations whose highest member is the larger of the
	// operands' highest members.
	maxLast bool
}

var (
	andOperator    = operator{literal: word.And}
	orOperator     = operator{literal: word.Or, keepLeft: true, keepRight: true, maxLast: true}
	xorOperator    = operator{literal: word.Xor, keepLeft: true, keepRight: true}
	andNotOperator = operator{literal: word.AndNot, keepLeft: true}
)

// emitFunc receives combined units: a literal (count == 1) or a run of
// count blocks whose fill type is w. Returning false stops the merge.
type emitFunc func(literal bool, w uint32, count int) bool

// merge walks a and b in lock-step and emits the combination of every pair
// of aligned blocks. It returns false if emit stopped it early. When it
// returns true at least one iterator is exhausted.
func merge[E Encoding](a, b *wordIterator[E], combine func(x, y uint32) uint32, emit emitFunc) bool {
	if a.exhausted() || b.exhausted() {
		return true
	}

	for {
		var okA, okB bool
		switch {
		case !a.isLiteral && !b.isLiteral:
			n := min(a.count, b.count)
			if !emit(false, combine(a.word, b.word)&word.SequenceBit, n) {
				return false
			}
			okA, okB = a.advance(n), b.advance(n)
		case !a.isLiteral:
			if !emit(true, combine(a.toLiteral(), b.word), 1) {
				return false
			}
			okA, okB = a.advance(1), b.next()
		case !b.isLiteral:
			if !emit(true, combine(a.word, b.toLiteral()), 1) {
				return false
			}
			okA, okB = a.next(), b.advance(1)
		default:
			if !emit(true, combine(a.word, b.word), 1) {
				return false
			}
			okA, okB = a.next(), b.next()
		}
		if !okA || !okB {
			return true
		}
	}
}

// combine builds the result of op applied to s and other.
func (s *Set[E]) combine(other *Set[E], op operator) *Set[E] {
	res := New[E]()
	// 3 + lastWordIndex(s) + lastWordIndex(other)
	res.ensureCapacity(s.n + other.n)

	a, b := newWordIterator(s), newWordIterator(other)
	merge(a, b, op.literal, func(literal bool, w uint32, count int) bool {
		if literal {
			res.appendLiteral(w)
		} else {
			res.appendFill(count, w)
		}
		return true
	})

	if op.keepLeft {
		a.flush(res)
	}
	if op.keepRight {
		b.flush(res)
	}

	res.trimZeros()
	if res.IsEmpty() {
		return res
	}
	if op.maxLast {
		res.last = max(s.last, other.last)
	} else {
		res.updateLast()
	}
	res.shrink()
	return res
}

// count returns the cardinality of op applied to s and other without
// building the result.
func (s *Set[E]) count(other *Set[E], op operator) int {
	n := 0
	a, b := newWordIterator(s), newWordIterator(other)
	merge(a, b, op.literal, func(literal bool, w uint32, count int) bool {
		switch {
		case literal:
			n += word.Popcount(w)
		case w == word.SequenceBit:
			n += word.BlockBits * count
		}
		return true
	})

	if op.keepLeft {
		n += a.remainingCount()
	}
	if op.keepRight {
		n += b.remainingCount()
	}
	return n
}

// And returns the intersection of s and other.
func (s *Set[E]) And(other *Set[E]) *Set[E] {
	if s.IsEmpty() || other.IsEmpty() {
		return New[E]()
	}
	return s.combine(other, andOperator)
}

// Or returns the union of s and other.
func (s *Set[E]) Or(other *Set[E]) *Set[E] {
	if s.IsEmpty() {
		return other.Clone()
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	return s.combine(other, orOperator)
}

// Xor returns the symmetric difference of s and other.
func (s *Set[E]) Xor(other *Set[E]) *Set[E] {
	if s.IsEmpty() {
		return other.Clone()
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	return s.combine(other, xorOperator)
}

// AndNot returns the members of s that are not in other.
func (s *Set[E]) AndNot(other *Set[E]) *Set[E] {
	if s.IsEmpty() {
		return New[E]()
	}
	if other.IsEmpty() {
		return s.Clone()
	}
	return s.combine(other, andNotOperator)
}

// AndCount returns the size of the intersection of s and other.
func (s *Set[E]) AndCount(other *Set[E]) int {
	if s.IsEmpty() || other.IsEmpty() {
		return 0
	}
	return s.count(other, andOperator)
}

// OrCount returns the size of the union of s and other.
func (s *Set[E]) OrCount(other *Set[E]) int {
	return s.count(other, orOperator)
}

// XorCount returns the size of the symmetric difference of s and other.
func (s *Set[E]) XorCount(other *Set[E]) int {
	return s.count(other, xorOperator)
}

// AndNotCount returns the number of members of s that are not in other.
func (s *Set[E]) AndNotCount(other *Set[E]) int {
	if s.IsEmpty() {
		return 0
	}
	return s.count(other, andNotOperator)
}

// Intersects reports whether s and other share at least one member.
func (s *Set[E]) Intersects(other *Set[E]) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	found := false
	a, b := newWordIterator(s), newWordIterator(other)
	merge(a, b, andOperator.literal, func(literal bool, w uint32, _ int) bool {
		found = nonZero(literal, w)
		return !found
	})
	return found
}

// Equals reports whether s and other have the same members.
func (s *Set[E]) Equals(other *Set[E]) bool {
	if s == other {
		return true
	}
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() == other.IsEmpty()
	}
	if s.last != other.last {
		return false
	}

	a, b := newWordIterator(s), newWordIterator(other)
	same := merge(a, b, xorOperator.literal, func(literal bool, w uint32, _ int) bool {
		return !nonZero(literal, w)
	})
	return same && a.remainingCount() == 0 && b.remainingCount() == 0
}

func nonZero(literal bool, w uint32) bool {
	if literal {
		return w != word.AllZerosLiteral
	}
	return w == word.SequenceBit
}
