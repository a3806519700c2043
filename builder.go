package concise

import (
	"github.com/hupe1980/concise/internal/word"
)

// Add inserts v. Values may arrive in any order; ascending insertion is the fast path.
//
// It returns an *ErrValueOutOfRange, leaving the set untouched, if v exceeds
// the maximum of the encoding.
func (s *Set[E]) Add(v uint32) error {
	var enc E
	if v > enc.maxValue() {
		return &ErrValueOutOfRange{Value: v, Max: enc.maxValue()}
	}

	if s.n == 0 || int(v) > s.last {
		s.append(v)
		return nil
	}
	if int(v) == s.last {
		return nil
	}

	if s.setInPlace(v) {
		return nil
	}

	// Setting the bit may create or split a run: rebuild through OR.
	single := New[E]()
	single.append(v)
	merged := s.Or(single)
	s.Swap(merged)
	return nil
}

// AddMany inserts every value. It stops at the first out of range value;
// values before it remain inserted.
func (s *Set[E]) AddMany(values ...uint32) error {
	for _, v := range values {
		if err := s.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// setInPlace sets bit v below last without changing the word layout.
// It reports false when the bit is not set yet and setting it in place
// could break canonical form.
func (s *Set[E]) setInPlace(v uint32) bool {
	var enc E
	mask := enc.runMask()
	block := int(v) / word.BlockBits
	bit := int(v) % word.BlockBits

	for i := 0; i < s.n && block >= 0; i++ {
		w := s.words[i]
		if word.IsLiteral(w) {
			if block > 0 {
				block--
				continue
			}
			if w&(1<<bit) != 0 {
				return true
			}
			if enc.flips() {
				// With 29 or more bits set the literal may become foldable
				// into a neighbouring one run.
				if word.Popcount(w) >= word.BlockBits-2 {
					return false
				}
			} else if word.ContainsOnlyOneBit(^w) || w == word.AllOnesLiteral {
				return false
			}
			s.words[i] = w | 1<<bit
			return true
		}

		if enc.flips() {
			if block == 0 && s.literalOf(w)&(1<<bit) != 0 {
				return true
			}
			if block > 0 && block <= word.RunCount(w, mask) && word.IsOneRun(w) {
				return true
			}
		} else if word.IsOneRun(w) && block <= word.RunCount(w, mask) {
			return true
		}
		block -= word.Blocks(w, mask)
	}
	return false
}

// append adds v, which must be greater than every member.
func (s *Set[E]) append(v uint32) {
	i := int(v)

	if s.n == 0 {
		zeroBlocks := i / word.BlockBits
		switch zeroBlocks {
		case 0:
		case 1:
			s.push(word.AllZerosLiteral)
		default:
			s.push(uint32(zeroBlocks - 1))
		}
		s.push(word.AllZerosLiteral | 1<<(i%word.BlockBits))
		s.last = i
		return
	}

	// offset of the new bit relative to the start of the last literal
	bit := s.last%word.BlockBits + i - s.last
	if bit >= word.BlockBits {
		zeroBlocks := bit/word.BlockBits - 1
		bit %= word.BlockBits
		if zeroBlocks > 0 {
			s.ensureCapacity(s.n + 1)
			s.appendFill(zeroBlocks, 0)
		}
		s.appendLiteral(word.AllZerosLiteral | 1<<bit)
	} else {
		s.words[s.n-1] |= 1 << bit
		if s.words[s.n-1] == word.AllOnesLiteral {
			s.n--
			s.appendLiteral(word.AllOnesLiteral)
		}
	}
	s.last = i
}

// appendLiteral appends a literal, merging it into the previous unit when
// the result stays canonical.
func (s *Set[E]) appendLiteral(w uint32) {
	var enc E
	mask := enc.runMask()

	// A lone maximal zero run followed by a zero block is still empty:
	// incrementing the count would spill out of the count field.
	if s.n == 1 && w == word.AllZerosLiteral && s.words[0] == mask {
		return
	}

	if s.n == 0 {
		s.push(w)
		return
	}

	i := s.n - 1
	prev := s.words[i]
	switch w {
	case word.AllZerosLiteral:
		switch {
		case prev == word.AllZerosLiteral:
			s.words[i] = 1
		case word.IsZeroRun(prev) && word.RunCount(prev, mask) < int(mask):
			s.words[i]++
		case enc.flips() && word.IsLiteral(prev) && word.ContainsOnlyOneBit(word.LiteralBits(prev)):
			s.words[i] = word.WithFlippedBit(1, word.LowestBit(prev))
		default:
			s.push(w)
		}
	case word.AllOnesLiteral:
		switch {
		case prev == word.AllOnesLiteral:
			s.words[i] = word.SequenceBit | 1
		case word.IsOneRun(prev) && word.RunCount(prev, mask) < int(mask):
			s.words[i]++
		case enc.flips() && word.IsLiteral(prev) && word.ContainsOnlyOneBit(^prev):
			s.words[i] = word.WithFlippedBit(word.SequenceBit|1, word.LowestBit(^prev))
		default:
			s.push(w)
		}
	default:
		s.push(w)
	}
}

// appendFill appends length blocks of zeros (fill has no SequenceBit) or ones.
func (s *Set[E]) appendFill(length int, fill uint32) {
	var enc E
	mask := enc.runMask()
	fill &= word.SequenceBit

	if length == 1 {
		if fill == 0 {
			s.appendLiteral(word.AllZerosLiteral)
		} else {
			s.appendLiteral(word.AllOnesLiteral)
		}
		return
	}

	if s.n == 0 {
		s.push(fill | uint32(length-1))
		return
	}

	i := s.n - 1
	prev := s.words[i]
	if word.IsLiteral(prev) {
		// folding prev in makes a run of length+1 blocks
		fits := length <= int(mask)
		switch {
		case fits && fill == 0 && prev == word.AllZerosLiteral:
			s.words[i] = uint32(length)
		case fits && fill == word.SequenceBit && prev == word.AllOnesLiteral:
			s.words[i] = word.SequenceBit | uint32(length)
		case fits && enc.flips() && fill == 0 && word.ContainsOnlyOneBit(word.LiteralBits(prev)):
			s.words[i] = word.WithFlippedBit(uint32(length), word.LowestBit(prev))
		case fits && enc.flips() && fill == word.SequenceBit && word.ContainsOnlyOneBit(^prev):
			s.words[i] = word.WithFlippedBit(word.SequenceBit|uint32(length), word.LowestBit(^prev))
		default:
			s.push(fill | uint32(length-1))
		}
		return
	}

	if word.Tag(prev) == fill && word.RunCount(prev, mask)+length <= int(mask) {
		s.words[i] += uint32(length)
		return
	}
	s.push(fill | uint32(length-1))
}

// trimZeros drops trailing zero units. A trailing zero run carrying a
// flipped bit collapses to the literal of its first block.
func (s *Set[E]) trimZeros() {
	var enc E
	for s.n > 0 {
		w := s.words[s.n-1]
		switch {
		case w == word.AllZerosLiteral:
			s.n--
		case word.IsZeroRun(w):
			if enc.flips() && word.HasFlippedBit(w) {
				s.words[s.n-1] = word.FirstBlock(w)
				return
			}
			s.n--
		default:
			return
		}
	}
	s.Clear()
}

// updateLast recomputes last from the words. The final unit must not be zero.
func (s *Set[E]) updateLast() {
	var enc E
	mask := enc.runMask()

	end := 0
	for _, w := range s.words[:s.n] {
		if word.IsLiteral(w) {
			end += word.BlockBits
		} else {
			end += word.BlockBits * word.Blocks(w, mask)
		}
	}

	w := s.words[s.n-1]
	if word.IsLiteral(w) {
		s.last = end - word.BlockBits + word.HighestBit(w)
	} else {
		s.last = end - 1
	}
}
