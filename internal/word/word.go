package word

import "math/bits"

const (
	// BlockBits is the number of set bits a literal carries.
	BlockBits = 31

	// AllOnesLiteral is the literal with every bit set.
	AllOnesLiteral uint32 = 0xFFFFFFFF
	// AllZerosLiteral is the literal with no bit set (only the tag).
	AllZerosLiteral uint32 = 0x80000000
	// AllOnesWithoutMSB masks the payload of a literal.
	AllOnesWithoutMSB uint32 = 0x7FFFFFFF
	// SequenceBit distinguishes a one run from a zero run.
	SequenceBit uint32 = 0x40000000

	// ConciseRunMask extracts the run count of a CONCISE run.
	ConciseRunMask uint32 = 0x01FFFFFF
	// WAHRunMask extracts the run count of a WAH run.
	WAHRunMask uint32 = 0x3FFFFFFF

	tagMask     uint32 = 0xC0000000
	flippedMask uint32 = 0x3E000000
	flipShift          = 25
)

// IsLiteral reports whether w is a literal.
func IsLiteral(w uint32) bool {
	return w&0x80000000 != 0
}

// IsZeroRun reports whether w is a run of zero blocks.
func IsZeroRun(w uint32) bool {
	return w&tagMask == 0
}

// IsOneRun reports whether w is a run of one blocks.
func IsOneRun(w uint32) bool {
	return w&tagMask == SequenceBit
}

// Tag returns the two tag bits of w.
func Tag(w uint32) uint32 {
	return w & tagMask
}

// RunCount returns the stored count of a run, that is its block count minus one.
func RunCount(w, mask uint32) int {
	return int(w & mask)
}

// Blocks returns the number of 31-bit blocks a run spans.
func Blocks(w, mask uint32) int {
	return int(w&mask) + 1
}

// HasFlippedBit reports whether a CONCISE run carries an embedded bit.
func HasFlippedBit(w uint32) bool {
	return w&flippedMask != 0
}

// FlippedBit returns the offset of the embedded bit of a CONCISE run,
// or -1 if the run carries none.
func FlippedBit(w uint32) int {
	return int((w>>flipShift)&0x1F) - 1
}

// WithFlippedBit stores bit as the embedded bit of run.
func WithFlippedBit(run uint32, bit int) uint32 {
	return run | uint32(bit+1)<<flipShift
}

// WithoutFlippedBit clears the embedded bit field of a CONCISE run.
func WithoutFlippedBit(w uint32) uint32 {
	return w &^ flippedMask
}

// Fill returns the canonical literal for a run's block value: all zeros or all ones.
func Fill(w uint32) uint32 {
	if IsOneRun(w) {
		return AllOnesLiteral
	}
	return AllZerosLiteral
}

// FirstBlock renders the first block of a CONCISE run as a literal, embedded bit included.
func FirstBlock(w uint32) uint32 {
	bit := uint32(1) << ((w >> flipShift) & 0x1F) >> 1
	if IsZeroRun(w) {
		return AllZerosLiteral | bit
	}
	return AllOnesLiteral &^ bit
}

// LiteralBits returns the payload of a literal.
func LiteralBits(w uint32) uint32 {
	return w & AllOnesWithoutMSB
}

// Popcount returns the number of set bits in a literal.
func Popcount(w uint32) int {
	return bits.OnesCount32(LiteralBits(w))
}

// ContainsOnlyOneBit reports whether exactly one bit of v is set. v must be nonzero.
func ContainsOnlyOneBit(v uint32) bool {
	return v&(v-1) == 0
}

// LowestBit returns the offset of the lowest set bit of v. v must be nonzero.
func LowestBit(v uint32) int {
	return bits.TrailingZeros32(v)
}

// HighestBit returns the offset of the highest set bit of a literal payload.
// The payload must be nonzero.
func HighestBit(w uint32) int {
	return 31 - bits.LeadingZeros32(LiteralBits(w))
}

// And intersects two literals.
func And(a, b uint32) uint32 {
	return AllZerosLiteral | (a & b)
}

// Or unions two literals.
func Or(a, b uint32) uint32 {
	return AllZerosLiteral | a | b
}

// Xor returns the symmetric difference of two literals.
func Xor(a, b uint32) uint32 {
	return AllZerosLiteral | (a ^ b)
}

// AndNot removes the bits of b from a.
func AndNot(a, b uint32) uint32 {
	return AllZerosLiteral | (a &^ b)
}
