package alx

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with alx-specific helpers.
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

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewWriterLogger creates a text or JSON Logger writing to w.
func NewWriterLogger(w io.Writer, level slog.Level, json bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return NewLogger(slog.NewJSONHandler(w, opts))
	}

	return NewLogger(slog.NewTextHandler(w, opts))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithFile adds a file field to the logger.
func (l *Logger) WithFile(name string) *Logger {
	return &Logger{
		Logger: l.With("file", name),
	}
}

// LogFileRead logs one source file read.
func (l *Logger) LogFileRead(ctx context.Context, name string, size, rawSize int, compressed bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"file", name,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "file read",
		"file", name,
		"size", size,
		"raw_size", rawSize,
		"compressed", compressed,
	)
}

// LogReconcile logs the outcome of a catalog build.
func (l *Logger) LogReconcile(ctx context.Context, files, records, entries, skipped int) {
	if skipped > 0 {
		l.WarnContext(ctx, "catalog built with skipped records",
			"files", files,
			"records", records,
			"entries", entries,
			"skipped", skipped,
		)

		return
	}

	l.InfoContext(ctx, "catalog built",
		"files", files,
		"records", records,
		"entries", entries,
	)
}

// LogWrite logs a file written back to the sink.
func (l *Logger) LogWrite(ctx context.Context, name string, size int, compressed bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"file", name,
			"error", err,
		)

		return
	}

	l.InfoContext(ctx, "file written",
		"file", name,
		"size", size,
		"compressed", compressed,
	)
}
