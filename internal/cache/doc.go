// Package cache provides a byte-bounded LRU cache.
//
// Entries are charged by a caller supplied size function. Once the total
// exceeds the capacity the least recently used entries are evicted.
// Values larger than the whole capacity are never cached.
package cache
