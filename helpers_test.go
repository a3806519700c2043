package concise

import (
	"math/rand/v2"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"
)

func build[E Encoding](t testing.TB, values ...uint32) *Set[E] {
	t.Helper()
	s, err := Of[E](values...)
	require.NoError(t, err)
	return s
}

func rangeOf(start, end, step uint32) []uint32 {
	var out []uint32
	for v := start; v < end; v += step {
		out = append(out, v)
	}
	return out
}

func concat(parts ...[]uint32) []uint32 {
	var out []uint32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// randomWorkload mixes dense ranges, sparse members and long gaps so that
// every word type shows up.
func randomWorkload(rng *rand.Rand) []uint32 {
	var out []uint32
	var base uint32
	for range 1 + rng.IntN(12) {
		base += uint32(rng.IntN(5000))
		length := uint32(1 + rng.IntN(800))
		switch rng.IntN(4) {
		case 0:
			out = append(out, rangeOf(base, base+length, 1)...)
		case 1:
			for v := base; v < base+length; v++ {
				if rng.IntN(10) == 0 {
					out = append(out, v)
				}
			}
		case 2:
			out = append(out, base)
		default:
			// full range with a single hole
			hole := base + uint32(rng.IntN(int(length)))
			for v := base; v < base+length; v++ {
				if v != hole {
					out = append(out, v)
				}
			}
		}
		base += length
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// requireMatches checks members, cardinality, last and canonical form.
func requireMatches[E Encoding](t testing.TB, want *roaring.Bitmap, got *Set[E]) {
	t.Helper()

	if want.IsEmpty() {
		require.True(t, got.IsEmpty())
		require.Empty(t, got.ToSlice())
		require.Equal(t, -1, got.Last())
		return
	}

	require.Equal(t, want.ToArray(), got.ToSlice())
	require.Equal(t, int(want.GetCardinality()), got.Size())
	require.Equal(t, int(want.Maximum()), got.Last())
	require.NoError(t, got.validate())
}
