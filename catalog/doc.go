// Package catalog keeps named compressed sets in a blob store.
//
// A Catalog persists each set as one blob and keeps recently used sets
// decoded in a byte-bounded LRU cache. Concurrent misses for the same name
// share a single load.
//
// # Example Usage
//
//	cat := catalog.New[concise.Concise](blobstore.NewLocalStore("/var/lib/bitmaps"),
//	    catalog.WithCacheBytes(64<<20),
//	    catalog.WithLogger(catalog.NewLogger(slog.NewJSONHandler(os.Stderr, nil))),
//	)
//
//	if err := cat.Put(ctx, "color=red", red); err != nil {
//	    return err
//	}
//	both, err := cat.Intersect(ctx, "color=red", "size=xl")
//
// # Combining Sets
//
// Union and Intersect load their inputs concurrently. Union merges them
// with FastUnion. Intersect starts from the smallest input and stops as
// soon as the running result is empty.
//
// # Names
//
// Set names are slash separated relative paths. Empty elements, "." and
// ".." are rejected with ErrInvalidName so that no name resolves outside
// the catalog prefix.
package catalog
