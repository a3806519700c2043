package concise

import (
	"math"

	"github.com/hupe1980/concise/internal/word"
)

// Encoding selects the run-length scheme of a Set.
//
// Concise runs may embed one flipped bit and count up to 2^25 blocks.
// WAH runs carry no flipped bit and count up to 2^30 blocks.
type Encoding interface {
	Concise | WAH

	// Name returns the stable name of the encoding.
	Name() string

	runMask() uint32
	flips() bool
	maxValue() uint32
	id() byte
}

// Concise is the CONCISE encoding.
type Concise struct{}

// Name implements Encoding.
func (Concise) Name() string { return "concise" }

func (Concise) runMask() uint32  { return word.ConciseRunMask }
func (Concise) flips() bool      { return true }
func (Concise) maxValue() uint32 { return MaxConciseValue }
func (Concise) id() byte         { return 1 }

// WAH is the word-aligned hybrid encoding.
type WAH struct{}

// Name implements Encoding.
func (WAH) Name() string { return "wah" }

func (WAH) runMask() uint32  { return word.WAHRunMask }
func (WAH) flips() bool      { return false }
func (WAH) maxValue() uint32 { return MaxWAHValue }
func (WAH) id() byte         { return 2 }

const (
	// MaxConciseValue is the highest integer a Concise set can hold.
	MaxConciseValue uint32 = 31*(1<<25) + 30
	// MaxWAHValue is the highest integer a WAH set can hold.
	MaxWAHValue uint32 = math.MaxInt32
)

// MaxValue returns the highest integer a set with encoding E can hold.
func MaxValue[E Encoding]() uint32 {
	var enc E
	return enc.maxValue()
}
