package catalog

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPut is called after each put. bytes is the encoded size.
	RecordPut(bytes int, duration time.Duration, err error)

	// RecordGet is called after each get. cacheHit reports whether the set
	// was served without touching the blob store.
	RecordGet(duration time.Duration, cacheHit bool, err error)

	// RecordDelete is called after each delete.
	RecordDelete(duration time.Duration, err error)

	// RecordCombine is called after each union or intersection.
	// op is "union" or "intersect", inputs the number of named sets.
	RecordCombine(op string, inputs int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordGet(time.Duration, bool, error)            {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)               {}
func (NoopMetricsCollector) RecordCombine(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PutCount       atomic.Int64
	PutErrors      atomic.Int64
	PutBytes       atomic.Int64
	GetCount       atomic.Int64
	GetErrors      atomic.Int64
	GetCacheHits   atomic.Int64
	GetTotalNanos  atomic.Int64
	DeleteCount    atomic.Int64
	DeleteErrors   atomic.Int64
	UnionCount     atomic.Int64
	IntersectCount atomic.Int64
	CombineErrors  atomic.Int64
	CombineInputs  atomic.Int64
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(bytes int, _ time.Duration, err error) {
	b.PutCount.Add(1)
	if err != nil {
		b.PutErrors.Add(1)
		return
	}
	b.PutBytes.Add(int64(bytes))
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(duration time.Duration, cacheHit bool, err error) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GetErrors.Add(1)
	}
	if cacheHit {
		b.GetCacheHits.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(_ time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordCombine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCombine(op string, inputs int, _ time.Duration, err error) {
	switch op {
	case opUnion:
		b.UnionCount.Add(1)
	case opIntersect:
		b.IntersectCount.Add(1)
	}
	b.CombineInputs.Add(int64(inputs))
	if err != nil {
		b.CombineErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PutCount:       b.PutCount.Load(),
		PutErrors:      b.PutErrors.Load(),
		PutBytes:       b.PutBytes.Load(),
		GetCount:       b.GetCount.Load(),
		GetErrors:      b.GetErrors.Load(),
		GetCacheHits:   b.GetCacheHits.Load(),
		GetAvgNanos:    b.getAvgGetNanos(),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteErrors:   b.DeleteErrors.Load(),
		UnionCount:     b.UnionCount.Load(),
		IntersectCount: b.IntersectCount.Load(),
		CombineErrors:  b.CombineErrors.Load(),
		CombineInputs:  b.CombineInputs.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgGetNanos() int64 {
	count := b.GetCount.Load()
	if count == 0 {
		return 0
	}
	return b.GetTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PutCount       int64
	PutErrors      int64
	PutBytes       int64
	GetCount       int64
	GetErrors      int64
	GetCacheHits   int64
	GetAvgNanos    int64
	DeleteCount    int64
	DeleteErrors   int64
	UnionCount     int64
	IntersectCount int64
	CombineErrors  int64
	CombineInputs  int64
}
