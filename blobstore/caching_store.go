package blobstore

import (
	"context"

	"github.com/hupe1980/concise/internal/cache"
)

// CachingStore wraps a BlobStore and keeps recently read blobs in memory.
// Writes and deletes through the store invalidate the cached copy.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU[string, []byte]
}

// NewCachingStore creates a new CachingStore holding up to capacityBytes of blobs.
func NewCachingStore(inner BlobStore, capacityBytes int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU[string](capacityBytes, func(b []byte) int64 { return int64(len(b)) }),
	}
}

// Get returns a blob from the cache or the wrapped store.
// The returned slice must be treated as read-only.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if b, ok := s.cache.Get(name); ok {
		return b, nil
	}
	b, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, b)
	return b, nil
}

// Put writes through to the wrapped store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob from the cache and the wrapped store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is passed through to the wrapped store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
