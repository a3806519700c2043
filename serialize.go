package concise

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/concise/internal/hash"
	"github.com/hupe1980/concise/internal/word"
)

// Persisted layout, little endian:
//
//	magic "CNCS" | encoding id (1) | lastWordIndex (int32) | last (int32) |
//	words (uint32 each) | CRC32C of everything before (uint32)
const (
	headerSize   = 13
	checksumSize = 4
	magic        = "CNCS"

	offsetEncoding      = 4
	offsetLastWordIndex = 5
	offsetLast          = 9
)

var (
	_ encoding.BinaryMarshaler   = (*Set[Concise])(nil)
	_ encoding.BinaryUnmarshaler = (*Set[WAH])(nil)
	_ io.WriterTo                = (*Set[Concise])(nil)
	_ io.ReaderFrom              = (*Set[WAH])(nil)
)

// MarshalBinary encodes the set.
func (s *Set[E]) MarshalBinary() ([]byte, error) {
	var enc E
	buf := make([]byte, headerSize+4*s.n+checksumSize)

	copy(buf, magic)
	buf[offsetEncoding] = enc.id()
	binary.LittleEndian.PutUint32(buf[offsetLastWordIndex:], uint32(int32(s.n-1)))
	binary.LittleEndian.PutUint32(buf[offsetLast:], uint32(int32(s.Last())))
	for i, w := range s.words[:s.n] {
		binary.LittleEndian.PutUint32(buf[headerSize+4*i:], w)
	}

	end := len(buf) - checksumSize
	binary.LittleEndian.PutUint32(buf[end:], hash.CRC32C(buf[:end]))
	return buf, nil
}

// UnmarshalBinary replaces the contents of s with the decoded set.
// Malformed input yields an *ErrMalformedEncoding and leaves s unchanged.
func (s *Set[E]) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize+checksumSize {
		return malformed(-1, "buffer holds %d bytes, want at least %d", len(data), headerSize+checksumSize)
	}

	count, last, err := parseHeader[E](data[:headerSize])
	if err != nil {
		return err
	}

	end := headerSize + 4*count
	if len(data) != end+checksumSize {
		return malformed(-1, "buffer holds %d bytes, want %d for %d words", len(data), end+checksumSize, count)
	}
	if sum := binary.LittleEndian.Uint32(data[end:]); sum != hash.CRC32C(data[:end]) {
		return malformed(end, "checksum mismatch")
	}

	return s.load(data[headerSize:end], last)
}

// WriteTo writes the encoded set to w.
func (s *Set[E]) WriteTo(w io.Writer) (int64, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom replaces the contents of s with a set read from r.
func (s *Set[E]) ReadFrom(r io.Reader) (int64, error) {
	h := hash.NewCRC32C()
	tr := hash.TeeReader(r, h)

	header := make([]byte, headerSize)
	n, err := io.ReadFull(tr, header)
	read := int64(n)
	if err != nil {
		return read, fmt.Errorf("read header: %w", err)
	}

	count, last, err := parseHeader[E](header)
	if err != nil {
		return read, err
	}

	// The header is untrusted: grow the body only as bytes arrive.
	var body bytes.Buffer
	copied, err := io.CopyN(&body, tr, int64(4*count))
	read += copied
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return read, fmt.Errorf("read words: %w", err)
	}

	var sum [checksumSize]byte
	n, err = io.ReadFull(r, sum[:])
	read += int64(n)
	if err != nil {
		return read, fmt.Errorf("read checksum: %w", err)
	}
	if binary.LittleEndian.Uint32(sum[:]) != h.Sum32() {
		return read, malformed(headerSize+body.Len(), "checksum mismatch")
	}

	return read, s.load(body.Bytes(), last)
}

// parseHeader validates the fixed header and returns the word count and last.
func parseHeader[E Encoding](header []byte) (int, int, error) {
	var enc E

	if string(header[:len(magic)]) != magic {
		return 0, 0, malformed(0, "bad magic %q", header[:len(magic)])
	}
	if id := header[offsetEncoding]; id != enc.id() {
		return 0, 0, malformed(offsetEncoding, "encoding id %d, want %d (%s)", id, enc.id(), enc.Name())
	}

	lastWordIndex := int(int32(binary.LittleEndian.Uint32(header[offsetLastWordIndex:])))
	if lastWordIndex < -1 {
		return 0, 0, malformed(offsetLastWordIndex, "lastWordIndex %d", lastWordIndex)
	}
	// every word spans at least one block
	count := lastWordIndex + 1
	if count > maxBlocks[E]() {
		return 0, 0, malformed(offsetLastWordIndex, "%d words exceed the %d blocks of the value range", count, maxBlocks[E]())
	}

	last := int(int32(binary.LittleEndian.Uint32(header[offsetLast:])))
	switch {
	case count == 0 && last != -1:
		return 0, 0, malformed(offsetLast, "empty set with last %d", last)
	case count > 0 && last < 0:
		return 0, 0, malformed(offsetLast, "non-empty set with last %d", last)
	}
	return count, last, nil
}

// load decodes and validates body, then installs it into s.
func (s *Set[E]) load(body []byte, last int) error {
	count := len(body) / 4
	if count == 0 {
		s.Clear()
		return nil
	}

	words := make([]uint32, count)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(body[4*i:])
	}

	decoded := &Set[E]{words: words, n: count}
	if err := decoded.validate(); err != nil {
		return err
	}
	decoded.updateLast()
	if decoded.last != last {
		return malformed(offsetLast, "last %d does not match encoded maximum %d", last, decoded.last)
	}

	s.Swap(decoded)
	return nil
}

// validate checks that the words are canonical and stay within the value range.
func (s *Set[E]) validate() error {
	var enc E
	mask := enc.runMask()
	limit := maxBlocks[E]()

	blocks := 0
	for i, w := range s.words[:s.n] {
		offset := headerSize + 4*i
		if i > 0 {
			if reason := nonCanonical[E](s.words[i-1], w); reason != "" {
				return malformed(offset, "%s", reason)
			}
		}
		switch {
		case word.IsLiteral(w):
			blocks++
		case word.RunCount(w, mask) == 0:
			// a single block is always written as a literal
			return malformed(offset, "run %#08x spans a single block", w)
		default:
			blocks += word.Blocks(w, mask)
		}
		if blocks > limit {
			return malformed(offset, "words span beyond the maximum value %d", enc.maxValue())
		}
	}

	tail := s.words[s.n-1]
	if tail == word.AllZerosLiteral || word.IsZeroRun(tail) {
		return malformed(headerSize+4*(s.n-1), "trailing zero word %#08x", tail)
	}

	end := blocks * word.BlockBits
	if word.IsLiteral(tail) {
		end -= word.BlockBits - 1 - word.HighestBit(tail)
	}
	if end-1 > int(enc.maxValue()) {
		return malformed(headerSize+4*(s.n-1), "highest member %d exceeds maximum %d", end-1, enc.maxValue())
	}
	return nil
}

// nonCanonical explains why w may not follow prev, or returns "".
func nonCanonical[E Encoding](prev, w uint32) string {
	var enc E
	mask := enc.runMask()

	switch {
	case word.IsLiteral(prev) && word.IsLiteral(w):
		if (prev == word.AllZerosLiteral || prev == word.AllOnesLiteral) && prev == w {
			return fmt.Sprintf("literal %#08x repeated instead of a run", w)
		}
		if !enc.flips() {
			return ""
		}
		if w == word.AllZerosLiteral && prev != word.AllZerosLiteral && word.ContainsOnlyOneBit(word.LiteralBits(prev)) {
			return "single-bit literal not folded into the following zero block"
		}
		if w == word.AllOnesLiteral && prev != word.AllOnesLiteral && word.ContainsOnlyOneBit(^prev) {
			return "single-gap literal not folded into the following one block"
		}
	case !word.IsLiteral(prev) && !word.IsLiteral(w):
		if enc.flips() && word.HasFlippedBit(w) {
			return ""
		}
		if word.Tag(prev) == word.Tag(w) && word.RunCount(prev, mask)+word.Blocks(w, mask) <= int(mask) {
			return "adjacent runs of the same type"
		}
	case !word.IsLiteral(prev):
		// run followed by a literal of its own fill
		if w == word.Fill(prev) && word.RunCount(prev, mask) < int(mask) {
			return "fill literal not merged into the preceding run"
		}
	default:
		// literal followed by a run that could have absorbed it
		if word.RunCount(w, mask) >= int(mask) || (enc.flips() && word.HasFlippedBit(w)) {
			return ""
		}
		if prev == word.Fill(w) {
			return "fill literal not merged into the following run"
		}
		if !enc.flips() {
			return ""
		}
		if word.IsZeroRun(w) && word.ContainsOnlyOneBit(word.LiteralBits(prev)) {
			return "single-bit literal not folded into the following zero run"
		}
		if word.IsOneRun(w) && word.ContainsOnlyOneBit(^prev) {
			return "single-gap literal not folded into the following one run"
		}
	}
	return ""
}

// maxBlocks returns the number of blocks needed to hold the maximum value.
func maxBlocks[E Encoding]() int {
	var enc E
	return int(enc.maxValue())/word.BlockBits + 1
}
