package nonmetric

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with search-core-specific context. This provides
// structured logging with consistent field names across build and search
// call sites.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// uses a default text handler to stderr.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs. level
// sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithMethod adds an index method-family field to the logger.
func (l *Logger) WithMethod(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", name),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithObjectCount adds a dataset-size field to the logger.
func (l *Logger) WithObjectCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("objects", count),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, method string, objectCount int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"method", method,
			"objects", objectCount,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"method", method,
			"objects", objectCount,
		)
	}
}

// LogRangeSearch logs a range-search call.
func (l *Logger) LogRangeSearch(ctx context.Context, radius float64, resultsFound int, evals uint64) {
	l.DebugContext(ctx, "range search completed",
		"radius", radius,
		"results", resultsFound,
		"distance_evals", evals,
	)
}

// LogKNNSearch logs a kNN-search call.
func (l *Logger) LogKNNSearch(ctx context.Context, k int, resultsFound int, evals uint64) {
	l.DebugContext(ctx, "knn search completed",
		"k", k,
		"results", resultsFound,
		"distance_evals", evals,
	)
}

// LogStrategyFallback logs recovery from an unknown build-time strategy or
// parameter, before the caller surfaces the resulting configuration error.
func (l *Logger) LogStrategyFallback(ctx context.Context, param, value string, err error) {
	l.WarnContext(ctx, "rejected configuration value",
		"param", param,
		"value", value,
		"error", err,
	)
}
