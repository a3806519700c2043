package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hupe1980/concise"
	"github.com/hupe1980/concise/blobstore"
)

// countingStore counts Get calls that reach the wrapped store.
type countingStore struct {
	blobstore.BlobStore
	gets atomic.Int64
}

func (s *countingStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.gets.Add(1)
	return s.BlobStore.Get(ctx, name)
}

func mustSet(t *testing.T, values ...uint32) *concise.ConciseSet {
	t.Helper()
	s, err := concise.Of[concise.Concise](values...)
	require.NoError(t, err)
	return s
}

func rangeSet(t *testing.T, start, end, step uint32) *concise.ConciseSet {
	t.Helper()
	s := concise.NewConcise()
	for v := start; v < end; v += step {
		require.NoError(t, s.Add(v))
	}
	return s
}

func TestCatalog_PutGet(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{BlobStore: blobstore.NewMemoryStore()}
	metrics := &BasicMetricsCollector{}
	cat := New[concise.Concise](store, WithMetricsCollector(metrics))

	want := rangeSet(t, 0, 5000, 3)
	require.NoError(t, cat.Put(ctx, "multiples-of-3", want))

	got, err := cat.Get(ctx, "multiples-of-3")
	require.NoError(t, err)
	assert.True(t, want.Equals(got))

	// served from the cache filled by Put
	assert.Equal(t, int64(0), store.gets.Load())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.PutCount)
	assert.Equal(t, int64(1), stats.GetCount)
	assert.Equal(t, int64(1), stats.GetCacheHits)
	assert.Greater(t, stats.PutBytes, int64(0))
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	cat := New[concise.Concise](blobstore.NewMemoryStore())

	original := mustSet(t, 1, 2, 3)
	require.NoError(t, cat.Put(ctx, "a", original))

	// neither the argument of Put nor the result of Get alias the cache
	require.NoError(t, original.Add(4))
	got, err := cat.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, got.Add(5))

	again, err := cat.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, again.ToSlice())
}

func TestCatalog_LoadsFromStore(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()

	sevens := concise.NewWAH()
	for v := uint32(10); v < 200000; v += 7 {
		require.NoError(t, sevens.Add(v))
	}
	writer := New[concise.WAH](mem)
	require.NoError(t, writer.Put(ctx, "s", sevens))

	store := &countingStore{BlobStore: mem}
	reader := New[concise.WAH](store)

	for range 3 {
		got, err := reader.Get(ctx, "s")
		require.NoError(t, err)
		assert.Equal(t, uint32(10), got.ToSlice()[0])
	}
	assert.Equal(t, int64(1), store.gets.Load())

	ok, err := reader.Contains(ctx, "s", 17)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = reader.Contains(ctx, "s", 18)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalog_NoCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{BlobStore: blobstore.NewMemoryStore()}
	cat := New[concise.Concise](store, WithCacheBytes(0))

	require.NoError(t, cat.Put(ctx, "a", mustSet(t, 1)))
	for range 3 {
		_, err := cat.Get(ctx, "a")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), store.gets.Load())
}

func TestCatalog_Errors(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	metrics := &BasicMetricsCollector{}
	cat := New[concise.Concise](mem, WithMetricsCollector(metrics))

	t.Run("NotFound", func(t *testing.T) {
		_, err := cat.Get(ctx, "missing")
		require.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("InvalidName", func(t *testing.T) {
		require.ErrorIs(t, cat.Put(ctx, "", mustSet(t, 1)), ErrInvalidName)
		_, err := cat.Get(ctx, "")
		require.ErrorIs(t, err, ErrInvalidName)
		require.ErrorIs(t, cat.Delete(ctx, ""), ErrInvalidName)
	})

	t.Run("Malformed", func(t *testing.T) {
		require.NoError(t, mem.Put(ctx, DefaultPrefix+"junk", []byte("not a set")))
		_, err := cat.Get(ctx, "junk")
		require.ErrorIs(t, err, concise.ErrMalformed)
	})

	t.Run("ForeignEncoding", func(t *testing.T) {
		wah := New[concise.WAH](mem)
		s, err := concise.Of[concise.WAH](1, 2, 3)
		require.NoError(t, err)
		require.NoError(t, wah.Put(ctx, "wah", s))

		_, err = cat.Get(ctx, "wah")
		require.ErrorIs(t, err, concise.ErrMalformed)
	})

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.PutErrors)
	assert.Equal(t, int64(4), stats.GetErrors)
	assert.Equal(t, int64(1), stats.DeleteErrors)
}

func TestCatalog_RejectsEscapingNames(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	cat := New[concise.Concise](blobstore.NewLocalStore(filepath.Join(parent, "store")))

	names := []string{"../x", "../../x", "a/../../x", "/abs", "./a", "a//b", "a/", `..\x`}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, cat.Put(ctx, name, mustSet(t, 1)), ErrInvalidName)
			_, err := cat.Get(ctx, name)
			require.ErrorIs(t, err, ErrInvalidName)
			_, err = cat.Contains(ctx, name, 1)
			require.ErrorIs(t, err, ErrInvalidName)
			require.ErrorIs(t, cat.Delete(ctx, name), ErrInvalidName)
		})
	}

	// nothing was written next to the store root
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// nested names stay inside the root
	require.NoError(t, cat.Put(ctx, "team/a", mustSet(t, 7)))
	ok, err := cat.Contains(ctx, "team/a", 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCatalog_CacheStats(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	require.NoError(t, New[concise.Concise](mem).Put(ctx, "a", mustSet(t, 1, 2, 3)))

	cat := New[concise.Concise](mem)
	assert.Equal(t, CacheStats{}, cat.CacheStats())

	_, err := cat.Get(ctx, "a")
	require.NoError(t, err)
	_, err = cat.Get(ctx, "a")
	require.NoError(t, err)

	stats := cat.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(mustSet(t, 1, 2, 3).SizeInBytes()), stats.Bytes)

	require.NoError(t, cat.Delete(ctx, "a"))
	assert.Equal(t, 0, cat.CacheStats().Entries)
	assert.Equal(t, int64(0), cat.CacheStats().Bytes)
}

func TestCatalog_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	cat := New[concise.Concise](mem, WithPrefix("bitmaps/"))

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, cat.Put(ctx, name, mustSet(t, 1, 2)))
	}
	require.NoError(t, mem.Put(ctx, "unrelated", []byte("x")))

	names, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, cat.Delete(ctx, "b"))
	require.NoError(t, cat.Delete(ctx, "b"))

	_, err = cat.Get(ctx, "b")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	names, err = cat.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestCatalog_UnionIntersect(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	cat := New[concise.Concise](blobstore.NewMemoryStore(), WithMetricsCollector(metrics), WithConcurrency(2))

	evens := rangeSet(t, 0, 10000, 2)
	threes := rangeSet(t, 0, 10000, 3)
	dense := rangeSet(t, 3000, 7000, 1)
	far := mustSet(t, 1_000_000)

	for name, s := range map[string]*concise.ConciseSet{"evens": evens, "threes": threes, "dense": dense, "far": far} {
		require.NoError(t, cat.Put(ctx, name, s))
	}

	u, err := cat.Union(ctx, "evens", "threes", "dense", "far")
	require.NoError(t, err)
	assert.True(t, u.Equals(concise.FastUnion(evens, threes, dense, far)))

	i, err := cat.Intersect(ctx, "evens", "threes", "dense")
	require.NoError(t, err)
	assert.True(t, i.Equals(evens.And(threes).And(dense)))
	assert.Equal(t, uint32(3000), i.ToSlice()[0])

	empty, err := cat.Intersect(ctx, "far", "evens", "dense")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	single, err := cat.Intersect(ctx, "far")
	require.NoError(t, err)
	assert.Equal(t, []uint32{1_000_000}, single.ToSlice())

	none, err := cat.Union(ctx)
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())

	_, err = cat.Union(ctx, "evens", "missing")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.UnionCount)
	assert.Equal(t, int64(3), stats.IntersectCount)
	assert.Equal(t, int64(1), stats.CombineErrors)
}

func TestCatalog_ConcurrentGets(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	require.NoError(t, New[concise.Concise](mem).Put(ctx, "shared", rangeSet(t, 0, 50000, 5)))

	store := &countingStore{BlobStore: mem}
	cat := New[concise.Concise](store)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := cat.Get(ctx, "shared")
			assert.NoError(t, err)
			assert.Equal(t, 10000, s.Size())
		}()
	}
	wg.Wait()

	// concurrent misses share one load, later ones hit the cache
	assert.LessOrEqual(t, store.gets.Load(), int64(16))
	_, err := cat.Get(ctx, "shared")
	require.NoError(t, err)
	assert.LessOrEqual(t, store.gets.Load(), int64(16))
}

func TestCatalog_StoreStack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := blobstore.NewCachingStore(
		blobstore.NewThrottledStore(blobstore.NewLocalStore(dir), rate.NewLimiter(rate.Inf, 1)),
		1<<20,
	)

	writer := New[concise.Concise](store)
	require.NoError(t, writer.Put(ctx, "x", rangeSet(t, 100, 900, 1)))

	// a second catalog on the same directory sees the set
	reader := New[concise.Concise](blobstore.NewLocalStore(dir))
	got, err := reader.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 800, got.Size())
}

func TestCatalog_Logging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cat := New[concise.Concise](blobstore.NewMemoryStore(), WithLogger(logger))

	require.NoError(t, cat.Put(ctx, "logged", mustSet(t, 1)))

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.SplitN(buf.Bytes(), []byte("\n"), 2)[0], &record))
	assert.Equal(t, "put completed", record["msg"])
	assert.Equal(t, "logged", record["set"])

	buf.Reset()
	_, err := cat.Union(ctx, "logged", "logged")
	require.NoError(t, err)

	record = nil
	require.NoError(t, json.Unmarshal(bytes.SplitN(buf.Bytes(), []byte("\n"), 2)[0], &record))
	assert.Equal(t, "union completed", record["msg"])
	assert.EqualValues(t, 2, record["inputs"])
	assert.EqualValues(t, 1, record["size"])
}
