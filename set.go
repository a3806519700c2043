package concise

import (
	"github.com/hupe1980/concise/internal/word"
)

// Set is a compressed set of non-negative integers.
//
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation; concurrent readers are fine.
type Set[E Encoding] struct {
	// words is a growable arena. Only words[:n] holds encoded units;
	// merges write past n before trimming.
	words []uint32
	n     int
	// last is the highest member, meaningful only when n > 0.
	last int
}

// ConciseSet is a Set using the CONCISE encoding.
type ConciseSet = Set[Concise]

// WAHSet is a Set using the WAH encoding.
type WAHSet = Set[WAH]

// New creates an empty set.
func New[E Encoding]() *Set[E] {
	return &Set[E]{}
}

// NewConcise creates an empty CONCISE set.
func NewConcise() *ConciseSet { return New[Concise]() }

// NewWAH creates an empty WAH set.
func NewWAH() *WAHSet { return New[WAH]() }

// Of creates a set holding the given values, in any order.
func Of[E Encoding](values ...uint32) (*Set[E], error) {
	s := New[E]()
	if err := s.AddMany(values...); err != nil {
		return nil, err
	}
	return s, nil
}

// IsEmpty reports whether the set has no members.
func (s *Set[E]) IsEmpty() bool {
	return s.n == 0
}

// Last returns the highest member, or -1 if the set is empty.
func (s *Set[E]) Last() int {
	if s.n == 0 {
		return -1
	}
	return s.last
}

// SizeInBytes returns the encoded size of the set.
func (s *Set[E]) SizeInBytes() int {
	return (s.n + 1) * 4
}

// Clone returns a deep copy of the set.
func (s *Set[E]) Clone() *Set[E] {
	c := &Set[E]{n: s.n, last: s.last}
	if s.n > 0 {
		c.words = make([]uint32, s.n)
		copy(c.words, s.words[:s.n])
	}
	return c
}

// Swap exchanges the contents of s and other in constant time.
func (s *Set[E]) Swap(other *Set[E]) {
	s.words, other.words = other.words, s.words
	s.n, other.n = other.n, s.n
	s.last, other.last = other.last, s.last
}

// Clear removes every member and releases the word buffer.
func (s *Set[E]) Clear() {
	s.words = nil
	s.n = 0
	s.last = 0
}

// Size returns the number of members.
func (s *Set[E]) Size() int {
	var enc E
	mask := enc.runMask()

	size := 0
	for _, w := range s.words[:s.n] {
		switch {
		case word.IsLiteral(w):
			size += word.Popcount(w)
		case word.IsZeroRun(w):
			if enc.flips() && word.HasFlippedBit(w) {
				size++
			}
		default:
			size += word.BlockBits * word.Blocks(w, mask)
			if enc.flips() && word.HasFlippedBit(w) {
				size--
			}
		}
	}
	return size
}

// Contains reports whether v is a member.
func (s *Set[E]) Contains(v uint32) bool {
	if s.n == 0 || int(v) > s.last {
		return false
	}

	var enc E
	mask := enc.runMask()
	block := int(v) / word.BlockBits
	bit := int(v) % word.BlockBits

	for _, w := range s.words[:s.n] {
		switch {
		case word.IsLiteral(w):
			if block == 0 {
				return w&(1<<bit) != 0
			}
			block--
		case word.IsZeroRun(w):
			if enc.flips() && block == 0 && word.FlippedBit(w) == bit {
				return true
			}
			block -= word.Blocks(w, mask)
			if block < 0 {
				return false
			}
		default:
			if enc.flips() && block == 0 && word.FlippedBit(w) == bit {
				return false
			}
			block -= word.Blocks(w, mask)
			if block < 0 {
				return true
			}
		}
	}
	return false
}

// literalOf renders the first block of w as a literal.
func (s *Set[E]) literalOf(w uint32) uint32 {
	var enc E
	switch {
	case word.IsLiteral(w):
		return w
	case enc.flips():
		return word.FirstBlock(w)
	default:
		return word.Fill(w)
	}
}

// ensureCapacity grows the arena so that words[index] is addressable.
func (s *Set[E]) ensureCapacity(index int) {
	if len(s.words) > index {
		return
	}
	size := max(index+1, 2*len(s.words))
	grown := make([]uint32, size)
	copy(grown, s.words[:s.n])
	s.words = grown
}

// push appends w as a new unit.
func (s *Set[E]) push(w uint32) {
	s.ensureCapacity(s.n)
	s.words[s.n] = w
	s.n++
}

// shrink releases the unused tail of the arena.
func (s *Set[E]) shrink() {
	if len(s.words) == s.n {
		return
	}
	words := make([]uint32, s.n)
	copy(words, s.words[:s.n])
	s.words = words
}
