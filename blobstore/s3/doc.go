// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewStoreFromConfig(ctx, "my-bucket", "bitmaps/",
//	    config.WithRegion("us-east-1"),
//	)
//
//	cat := catalog.New[concise.Concise](store)
//
// # Features
//
//   - Multipart uploads with CRC32C checksums for large sets
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
