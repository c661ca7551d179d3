package recgo

import (
	"runtime"

	"github.com/hupe1980/recgo/block"
)

type options struct {
	blockSize   int
	parallelism int
	validateIDs bool
	logger      *Logger
	metrics     MetricsCollector
}

func defaultOptions() options {
	return options{
		blockSize:   block.DefaultBlockSize,
		parallelism: runtime.GOMAXPROCS(0),
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
}

// Option configures model construction.
type Option func(*options)

// WithBlockSize sets the number of vectors per block. Larger blocks mean
// bigger score matrices per block pair but fewer pairs overall; the default
// of block.DefaultBlockSize is a reasonable trade for most workloads.
func WithBlockSize(size int) Option {
	return func(o *options) {
		o.blockSize = size
	}
}

// WithParallelism caps the number of source blocks scored concurrently
// during RecommendForAll. Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithIDValidation enables an eager uniqueness check over both sides at
// construction time. Without it, duplicate ids within a side are undefined
// behavior rather than an error.
func WithIDValidation() Option {
	return func(o *options) {
		o.validateIDs = true
	}
}

// WithLogger sets the logger used for progress and warning output.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector for recommend operations.
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
