package recgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (result count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRank adds a rank field to the logger.
func (l *Logger) WithRank(rank int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rank", rank),
	}
}

// LogBlockify logs a blockify pass over one side.
func (l *Logger) LogBlockify(ctx context.Context, side string, vectors, blocks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "blockify failed",
			"side", side,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "blockify completed",
			"side", side,
			"vectors", vectors,
			"blocks", blocks,
		)
	}
}

// LogRecommendForAll logs a full batch recommendation pass.
func (l *Logger) LogRecommendForAll(ctx context.Context, k, sources int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "recommend-for-all failed",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "recommend-for-all completed",
			"k", k,
			"sources", sources,
		)
	}
}

// LogRecommend logs a single-source recommendation.
func (l *Logger) LogRecommend(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "recommend failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "recommend completed",
			"k", k,
			"results", resultsFound,
		)
	}
}
