package odorsearch

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with search-specific context.
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

// WithRun adds a run id field to the logger.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// WithGeneration adds a generation field to the logger.
func (l *Logger) WithGeneration(generation int) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", generation),
	}
}

// LogCandidate logs a candidate handed to the host.
func (l *Logger) LogCandidate(ctx context.Context, r Recipe, vector string) {
	l.DebugContext(ctx, "candidate ready",
		"label", r.Label,
		"trial", r.Trial,
		"generation", r.Generation,
		"vector", vector,
	)
}

// LogMeasurement logs a reported measurement.
func (l *Logger) LogMeasurement(ctx context.Context, trial int, distance float64, improved bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "measurement rejected",
			"trial", trial,
			"error", err,
		)
	} else if improved {
		l.InfoContext(ctx, "population improved",
			"trial", trial,
			"distance", distance,
		)
	} else {
		l.DebugContext(ctx, "measurement recorded",
			"trial", trial,
			"distance", distance,
		)
	}
}

// LogFinal logs the end of a search.
func (l *Logger) LogFinal(ctx context.Context, r Recipe, best float64, trials int, elapsed time.Duration) {
	l.InfoContext(ctx, "search finished",
		"best_trial", r.Trial,
		"distance", best,
		"trials", trials,
		"elapsed", elapsed,
	)
}

// LogFallback logs that candidates were redrawn at random after failing to
// land inside the value range.
func (l *Logger) LogFallback(ctx context.Context, added, total int) {
	l.WarnContext(ctx, "candidate replaced by random vector",
		"count", added,
		"total", total,
	)
}

// LogResume logs a journal replay.
func (l *Logger) LogResume(ctx context.Context, path string, entriesReplayed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "journal replay failed",
			"path", path,
			"entries_replayed", entriesReplayed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "journal replay completed",
			"path", path,
			"entries_replayed", entriesReplayed,
		)
	}
}
