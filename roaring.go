package concise

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/concise/internal/word"
)

// ToRoaring converts the set to a roaring bitmap. One runs are added as ranges.
func (s *Set[E]) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()

	var enc E
	mask := enc.runMask()
	block := 0
	for _, w := range s.words[:s.n] {
		if word.IsLiteral(w) {
			addLiteral(rb, block, w)
			block++
			continue
		}

		blocks := word.Blocks(w, mask)
		start := uint64(block * word.BlockBits)
		end := uint64((block + blocks) * word.BlockBits)
		if word.IsOneRun(w) {
			rb.AddRange(start, end)
			if enc.flips() && word.HasFlippedBit(w) {
				rb.Remove(uint32(start) + uint32(word.FlippedBit(w)))
			}
		} else if enc.flips() && word.HasFlippedBit(w) {
			rb.Add(uint32(start) + uint32(word.FlippedBit(w)))
		}
		block += blocks
	}
	return rb
}

func addLiteral(rb *roaring.Bitmap, block int, w uint32) {
	bits := word.LiteralBits(w)
	base := uint32(block * word.BlockBits)
	for bits != 0 {
		rb.Add(base + uint32(word.LowestBit(bits)))
		bits &= bits - 1
	}
}

// FromRoaring builds a set holding the members of rb.
func FromRoaring[E Encoding](rb *roaring.Bitmap) (*Set[E], error) {
	s := New[E]()
	if rb.IsEmpty() {
		return s, nil
	}

	var enc E
	if top := rb.Maximum(); top > enc.maxValue() {
		return nil, &ErrValueOutOfRange{Value: top, Max: enc.maxValue()}
	}

	it := rb.Iterator()
	for it.HasNext() {
		// ascending, so always the append fast path
		s.append(it.Next())
	}
	return s, nil
}
