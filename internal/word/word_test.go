package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name    string
		w       uint32
		literal bool
		zero    bool
		one     bool
	}{
		{"zero literal", AllZerosLiteral, true, false, false},
		{"ones literal", AllOnesLiteral, true, false, false},
		{"literal with tag 11", 0xC0000001, true, false, false},
		{"zero run", 0x00000005, false, true, false},
		{"one run", SequenceBit | 3, false, false, true},
		{"zero run with flipped bit", WithFlippedBit(4, 7), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.literal, IsLiteral(tt.w))
			assert.Equal(t, tt.zero, IsZeroRun(tt.w))
			assert.Equal(t, tt.one, IsOneRun(tt.w))
		})
	}
}

func TestRunCount(t *testing.T) {
	w := WithFlippedBit(SequenceBit|9, 3)

	assert.Equal(t, 9, RunCount(w, ConciseRunMask))
	assert.Equal(t, 10, Blocks(w, ConciseRunMask))
	// In WAH mode the flipped field is part of the count.
	assert.Equal(t, 9|(4<<25), RunCount(w, WAHRunMask))
}

func TestFlippedBit(t *testing.T) {
	assert.Equal(t, -1, FlippedBit(0x00000010))
	assert.False(t, HasFlippedBit(0x00000010))

	for bit := 0; bit < BlockBits; bit++ {
		w := WithFlippedBit(SequenceBit|1, bit)
		assert.True(t, HasFlippedBit(w))
		assert.Equal(t, bit, FlippedBit(w))
		assert.Equal(t, SequenceBit|1, WithoutFlippedBit(w))
	}
}

func TestFirstBlock(t *testing.T) {
	assert.Equal(t, AllZerosLiteral, FirstBlock(0x00000003))
	assert.Equal(t, AllOnesLiteral, FirstBlock(SequenceBit|3))
	assert.Equal(t, AllZerosLiteral|1<<30, FirstBlock(WithFlippedBit(3, 30)))
	assert.Equal(t, AllOnesLiteral&^(1<<5), FirstBlock(WithFlippedBit(SequenceBit|3, 5)))
}

func TestFill(t *testing.T) {
	assert.Equal(t, AllZerosLiteral, Fill(0x00000007))
	assert.Equal(t, AllOnesLiteral, Fill(SequenceBit|7))
}

func TestLiteralOps(t *testing.T) {
	a := AllZerosLiteral | 0b1100
	b := AllZerosLiteral | 0b1010

	assert.Equal(t, AllZerosLiteral|0b1000, And(a, b))
	assert.Equal(t, AllZerosLiteral|0b1110, Or(a, b))
	assert.Equal(t, AllZerosLiteral|0b0110, Xor(a, b))
	assert.Equal(t, AllZerosLiteral|0b0100, AndNot(a, b))

	// The tag survives every operator.
	assert.True(t, IsLiteral(Xor(AllOnesLiteral, AllOnesLiteral)))
	assert.True(t, IsLiteral(AndNot(AllOnesLiteral, AllOnesLiteral)))
}

func TestBitHelpers(t *testing.T) {
	assert.Equal(t, 3, Popcount(AllZerosLiteral|0b10101))
	assert.Equal(t, BlockBits, Popcount(AllOnesLiteral))
	assert.True(t, ContainsOnlyOneBit(1<<17))
	assert.False(t, ContainsOnlyOneBit(0b11))
	assert.Equal(t, 17, LowestBit(AllZerosLiteral|1<<17))
	assert.Equal(t, 30, HighestBit(AllOnesLiteral))
	assert.Equal(t, 0, HighestBit(AllZerosLiteral|1))
}
