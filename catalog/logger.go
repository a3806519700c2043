package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with catalog-specific context.
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

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithName adds a set name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("set", name),
	}
}

// WithInputs adds the number of combined sets to the logger.
func (l *Logger) WithInputs(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("inputs", n),
	}
}

// LogPut logs a put operation.
func (l *Logger) LogPut(ctx context.Context, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed", "error", err)
	} else {
		l.DebugContext(ctx, "put completed", "bytes", bytes)
	}
}

// LogGet logs a get operation.
func (l *Logger) LogGet(ctx context.Context, cacheHit bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed", "error", err)
	} else {
		l.DebugContext(ctx, "get completed", "cache_hit", cacheHit)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed", "error", err)
	} else {
		l.InfoContext(ctx, "set deleted")
	}
}

// LogCombine logs a union or intersection.
func (l *Logger) LogCombine(ctx context.Context, op string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed", "error", err)
	} else {
		l.DebugContext(ctx, op+" completed", "size", size)
	}
}
