package bisect

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with bisect-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithExecutor adds the executor name to the logger.
func (l *Logger) WithExecutor(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("executor", name),
	}
}

// WithBatch adds the batch length to the logger.
func (l *Logger) WithBatch(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch", n),
	}
}

// LogDispatch logs a batched dispatch.
func (l *Logger) LogDispatch(ctx context.Context, n int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dispatch failed",
			"batch", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "dispatch completed",
			"batch", n,
			"duration", duration,
		)
	}
}

// LogStaging logs a staging acquisition.
func (l *Logger) LogStaging(ctx context.Context, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "staging acquisition failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "staging acquired",
			"bytes", bytes,
		)
	}
}
