package concise

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	t.Run("concise", testIterator[Concise])
	t.Run("wah", testIterator[WAH])
}

func testIterator[E Encoding](t *testing.T) {
	t.Run("SortedAndDeduplicated", func(t *testing.T) {
		for seed := range uint64(10) {
			values := randomWorkload(newRand(seed))
			s := build[E](t, values...)

			want := slices.Clone(values)
			slices.Sort(want)
			want = slices.Compact(want)

			var got []uint32
			it := s.Iterator()
			for it.HasNext() {
				got = append(got, it.Next())
			}
			if len(want) == 0 {
				assert.Empty(t, got)
				continue
			}
			assert.Equal(t, want, got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		it := New[E]().Iterator()
		assert.False(t, it.HasNext())
		assert.Panics(t, func() { it.Next() })
	})

	t.Run("HasNextIsIdempotent", func(t *testing.T) {
		s := build[E](t, 4, 4000)
		it := s.Iterator()
		assert.True(t, it.HasNext())
		assert.True(t, it.HasNext())
		assert.Equal(t, uint32(4), it.Next())
		assert.Equal(t, uint32(4000), it.Next())
		assert.False(t, it.HasNext())
	})

	t.Run("AllStopsEarly", func(t *testing.T) {
		s := build[E](t, rangeOf(0, 1000, 1)...)
		var got []uint32
		for v := range s.All() {
			if v == 3 {
				break
			}
			got = append(got, v)
		}
		assert.Equal(t, []uint32{0, 1, 2}, got)
	})

	t.Run("IterationRebuildsTheSet", func(t *testing.T) {
		s := build[E](t, randomWorkload(newRand(42))...)
		rebuilt := New[E]()
		for v := range s.All() {
			require.NoError(t, rebuilt.Add(v))
		}
		assert.True(t, s.Equals(rebuilt))
	})
}
