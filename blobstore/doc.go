// Package blobstore provides storage for persisted sets.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory map, for tests and ephemeral catalogs
//   - LocalStore: local filesystem with atomic rename on write
//   - minio.Store: MinIO and other S3-compatible storage
//   - s3.Store: Amazon S3 with multipart uploads
//
// # Wrappers
//
//   - CachingStore keeps recently read blobs in a byte-bounded LRU
//   - ThrottledStore limits the request rate against a backend
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error      // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
