// Package logx wraps log/slog with the handful of query-traversal
// attributes the engine attaches consistently, mirroring the attribute
// style dialect/sql's StatsDriver already logs slow queries with.
package logx

import (
	"context"
	"log/slog"
	"os"
)

// Logger is a slog.Logger with query-traversal context pre-attached via
// With. The zero value is unusable; use New or a With* constructor.
type Logger struct {
	*slog.Logger
}

// New wraps the default slog logger.
func New() Logger {
	return Logger{slog.Default()}
}

// Build constructs a Logger from a level ("debug"|"info"|"warn"|"error")
// and format ("json"|"text"), as loaded from a deployment's properties
// file. An unrecognized level falls back to info; an unrecognized format
// falls back to text.
func Build(level, format string) Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return Logger{slog.New(handler)}
}

// WithQuery attaches the root query shape's string form.
func (l Logger) WithQuery(q string) Logger {
	return Logger{l.Logger.With("query", q)}
}

// WithTable attaches the table being queried at the current level.
func (l Logger) WithTable(table string) Logger {
	return Logger{l.Logger.With("table", table)}
}

// WithDepth attaches the current traversal depth.
func (l Logger) WithDepth(depth int) Logger {
	return Logger{l.Logger.With("depth", depth)}
}

// DebugContext logs at debug level with ctx, matching slog's context-aware
// handlers (e.g. one that pulls a request or correlation id off ctx).
func (l Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.Logger.DebugContext(ctx, msg, args...)
}

// WarnContext logs at warn level with ctx.
func (l Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.Logger.WarnContext(ctx, msg, args...)
}
