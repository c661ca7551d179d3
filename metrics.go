package recgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRecommendForAll is called after each batch recommendation pass.
	// pairs is the number of block pairs scored, duration is the total time
	// taken, err is nil if successful.
	RecordRecommendForAll(k, pairs int, duration time.Duration, err error)

	// RecordRecommend is called after each single-source recommendation.
	RecordRecommend(k int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRecommendForAll(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRecommend(int, time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RecommendForAllCount  atomic.Int64
	RecommendForAllErrors atomic.Int64
	RecommendForAllNanos  atomic.Int64
	BlockPairs            atomic.Int64
	RecommendCount        atomic.Int64
	RecommendErrors       atomic.Int64
	RecommendNanos        atomic.Int64
}

// RecordRecommendForAll implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecommendForAll(k, pairs int, duration time.Duration, err error) {
	b.RecommendForAllCount.Add(1)
	b.RecommendForAllNanos.Add(duration.Nanoseconds())
	b.BlockPairs.Add(int64(pairs))
	if err != nil {
		b.RecommendForAllErrors.Add(1)
	}
}

// RecordRecommend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecommend(k int, duration time.Duration, err error) {
	b.RecommendCount.Add(1)
	b.RecommendNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RecommendErrors.Add(1)
	}
}
