package genarena

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific context.
// This provides structured logging with consistent field names.
//
// Per-element operations (Create, Get, Destroy) are never logged; only
// storage lifecycle events and failures are.
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

// WithName adds an arena name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name),
	}
}

// LogGrow logs a page allocation.
func (l *Logger) LogGrow(pages int, bytes int64, slots int) {
	l.Debug("arena grew",
		"pages", pages,
		"page_bytes", bytes,
		"slots", slots,
	)
}

// LogAllocationFailure logs a failed Create or Reserve.
func (l *Logger) LogAllocationFailure(op string, slots int, err error) {
	l.Warn("arena allocation failed",
		"op", op,
		"slots", slots,
		"error", err,
	)
}

// LogRetire logs a slot taken out of circulation because its generation
// would wrap.
func (l *Logger) LogRetire(index uint64, generation uint64) {
	l.Debug("slot retired",
		"index", index,
		"generation", generation,
	)
}

// LogReset logs a Reset.
func (l *Logger) LogReset(destroyed, slots int) {
	l.Info("arena reset",
		"destroyed", destroyed,
		"slots", slots,
	)
}

// LogClose logs a Close.
func (l *Logger) LogClose(live, slots int, bytesReleased int64) {
	if live > 0 {
		l.Debug("arena closed with live elements",
			"live", live,
			"slots", slots,
			"bytes_released", bytesReleased,
		)
		return
	}
	l.Debug("arena closed",
		"slots", slots,
		"bytes_released", bytesReleased,
	)
}

// LogInvariantViolation logs a corrupted arena before it panics.
func (l *Logger) LogInvariantViolation(err *InvariantError) {
	l.Error("arena invariant violated",
		"index", err.Index,
		"reason", err.Reason,
	)
}
