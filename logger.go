package genarena

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific context.
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

// WithName adds an arena name field to the logger (useful when several
// arenas share one handler).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name),
	}
}

// LogGrow logs a growth attempt from one capacity to another.
func (l *Logger) LogGrow(ctx context.Context, from, requested int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "grow failed",
			"capacity", from,
			"requested", requested,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "grow completed",
			"from", from,
			"to", from+requested,
		)
	}
}

// LogRetire logs a slot taken out of circulation after generation overflow.
func (l *Logger) LogRetire(ctx context.Context, position, generation uint32) {
	l.WarnContext(ctx, "slot retired",
		"position", position,
		"generation", generation,
	)
}

// LogClose logs an arena close.
func (l *Logger) LogClose(ctx context.Context, capacity int, releasedBytes int64) {
	l.InfoContext(ctx, "arena closed",
		"capacity", capacity,
		"released_bytes", releasedBytes,
	)
}
