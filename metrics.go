package genarena

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are invoked synchronously on the arena's hot path and must be
// cheap.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    creates prometheus.Counter
//	    misses  prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordLookup(hit bool) {
//	    if !hit {
//	        p.misses.Inc()
//	    }
//	}
type MetricsCollector interface {
	// RecordCreate is called after each Create. reused is true when a freed
	// slot was recycled; err is non-nil if the element was not stored.
	RecordCreate(reused bool, err error)

	// RecordDestroy is called after each Destroy or Take. removed is false
	// when the handle was stale and the call was a no-op.
	RecordDestroy(removed bool)

	// RecordLookup is called after each Get, GetConst or Contains.
	RecordLookup(hit bool)

	// RecordGrow is called after slot storage grows by one page.
	RecordGrow(slots int, bytes int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(bool, error) {}
func (NoopMetricsCollector) RecordDestroy(bool)       {}
func (NoopMetricsCollector) RecordLookup(bool)        {}
func (NoopMetricsCollector) RecordGrow(int, int64)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It is safe to share one collector between arenas on different goroutines.
type BasicMetricsCollector struct {
	CreateCount   atomic.Int64
	CreateReused  atomic.Int64
	CreateErrors  atomic.Int64
	DestroyCount  atomic.Int64
	DestroyNoops  atomic.Int64
	LookupCount   atomic.Int64
	LookupMisses  atomic.Int64
	GrowCount     atomic.Int64
	GrowBytes     atomic.Int64
	SlotsReserved atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(reused bool, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
		return
	}
	if reused {
		b.CreateReused.Add(1)
	}
}

// RecordDestroy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDestroy(removed bool) {
	b.DestroyCount.Add(1)
	if !removed {
		b.DestroyNoops.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(hit bool) {
	b.LookupCount.Add(1)
	if !hit {
		b.LookupMisses.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(slots int, bytes int64) {
	b.GrowCount.Add(1)
	b.GrowBytes.Add(bytes)
	b.SlotsReserved.Add(int64(slots))
}

// GetStats returns a snapshot of collected metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		CreateCount:   b.CreateCount.Load(),
		CreateReused:  b.CreateReused.Load(),
		CreateErrors:  b.CreateErrors.Load(),
		DestroyCount:  b.DestroyCount.Load(),
		DestroyNoops:  b.DestroyNoops.Load(),
		LookupCount:   b.LookupCount.Load(),
		LookupMisses:  b.LookupMisses.Load(),
		GrowCount:     b.GrowCount.Load(),
		GrowBytes:     b.GrowBytes.Load(),
		SlotsReserved: b.SlotsReserved.Load(),
	}

	if stats.LookupCount > 0 {
		stats.LookupHitRate = float64(stats.LookupCount-stats.LookupMisses) / float64(stats.LookupCount)
	}
	if created := stats.CreateCount - stats.CreateErrors; created > 0 {
		stats.ReuseRate = float64(stats.CreateReused) / float64(created)
	}

	return stats
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	CreateCount   int64
	CreateReused  int64
	CreateErrors  int64
	DestroyCount  int64
	DestroyNoops  int64
	LookupCount   int64
	LookupMisses  int64
	GrowCount     int64
	GrowBytes     int64
	SlotsReserved int64
	LookupHitRate float64
	ReuseRate     float64
}
