package nonmetric

import (
	"sync/atomic"
	"time"
)

// MetricsCollector collects operational metrics about index builds and
// searches. Implement this interface to integrate with monitoring systems
// like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildHistogram  prometheus.Histogram
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBuild(objectCount int, duration time.Duration, err error) {
//	    p.buildHistogram.Observe(duration.Seconds())
//	    // ... record error state, object count, etc.
//	}
type MetricsCollector interface {
	// RecordBuild is called after each index build. objectCount is the
	// dataset size, duration is the total time taken, err is nil if
	// successful.
	RecordBuild(objectCount int, duration time.Duration, err error)

	// RecordRangeSearch is called after each range search. resultCount is
	// the number of admitted objects, evals is the number of distance
	// evaluations charged to the query.
	RecordRangeSearch(resultCount int, evals uint64, duration time.Duration)

	// RecordKNNSearch is called after each kNN search.
	RecordKNNSearch(k, resultCount int, evals uint64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector. Use
// this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordRangeSearch(int, uint64, time.Duration)    {}
func (NoopMetricsCollector) RecordKNNSearch(int, int, uint64, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount            atomic.Int64
	BuildErrors           atomic.Int64
	BuildTotalNanos       atomic.Int64
	RangeSearchCount      atomic.Int64
	RangeSearchEvals      atomic.Int64
	RangeSearchTotalNanos atomic.Int64
	KNNSearchCount        atomic.Int64
	KNNSearchEvals        atomic.Int64
	KNNSearchTotalNanos   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(objectCount int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordRangeSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeSearch(resultCount int, evals uint64, duration time.Duration) {
	b.RangeSearchCount.Add(1)
	b.RangeSearchEvals.Add(int64(evals))
	b.RangeSearchTotalNanos.Add(duration.Nanoseconds())
}

// RecordKNNSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordKNNSearch(k, resultCount int, evals uint64, duration time.Duration) {
	b.KNNSearchCount.Add(1)
	b.KNNSearchEvals.Add(int64(evals))
	b.KNNSearchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:          b.BuildCount.Load(),
		BuildErrors:         b.BuildErrors.Load(),
		BuildAvgNanos:       b.getAvgNanos(&b.BuildTotalNanos, &b.BuildCount),
		RangeSearchCount:    b.RangeSearchCount.Load(),
		RangeSearchEvals:    b.RangeSearchEvals.Load(),
		RangeSearchAvgNanos: b.getAvgNanos(&b.RangeSearchTotalNanos, &b.RangeSearchCount),
		KNNSearchCount:      b.KNNSearchCount.Load(),
		KNNSearchEvals:      b.KNNSearchEvals.Load(),
		KNNSearchAvgNanos:   b.getAvgNanos(&b.KNNSearchTotalNanos, &b.KNNSearchCount),
	}
}

func (b *BasicMetricsCollector) getAvgNanos(totalNanos, count *atomic.Int64) int64 {
	c := count.Load()
	if c == 0 {
		return 0
	}
	return totalNanos.Load() / c
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount          int64
	BuildErrors         int64
	BuildAvgNanos       int64
	RangeSearchCount    int64
	RangeSearchEvals    int64
	RangeSearchAvgNanos int64
	KNNSearchCount      int64
	KNNSearchEvals      int64
	KNNSearchAvgNanos   int64
}
