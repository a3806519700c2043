package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledStore limits the rate of requests sent to the wrapped store.
// Every call waits for one token; calls fail with the context error if
// the context ends while waiting.
type ThrottledStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottledStore wraps inner. The limiter may be shared by several stores
// to bound their combined request rate.
func NewThrottledStore(inner BlobStore, limiter *rate.Limiter) *ThrottledStore {
	return &ThrottledStore{
		inner:   inner,
		limiter: limiter,
	}
}

// Get waits for a token and reads a blob.
func (s *ThrottledStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Get(ctx, name)
}

// Put waits for a token and writes a blob.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete waits for a token and removes a blob.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List waits for a token and lists blobs.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}
