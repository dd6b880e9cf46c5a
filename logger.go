package arbor

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arbor-specific helpers.
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

// LogAdd logs a node insertion.
func (l *Logger) LogAdd(id, parent uint64, root bool) {
	if root {
		l.Debug("node added",
			"id", id,
			"root", true,
		)
	} else {
		l.Debug("node added",
			"id", id,
			"parent", parent,
		)
	}
}

// LogDelete logs a cascading delete.
func (l *Logger) LogDelete(id uint64, deleted int) {
	l.Debug("subtree deleted",
		"id", id,
		"deleted", deleted,
	)
}

// LogWalk logs a traversal.
func (l *Logger) LogWalk(root uint64, visited int) {
	l.Debug("tree walk completed",
		"root", root,
		"visited", visited,
	)
}
