// Package wirelog adapts the Debugf/Noticef/Warningf/Errorf calling
// convention the original spvwallet sources log through onto the
// standard library's structured logger, since no third-party logging
// library rides along with this module's dependency graph. Notice sits
// between Info and Warn in the original's severity ladder; it is mapped
// onto slog's Info level with a "notice" marker attribute so it remains
// distinguishable in structured output.
package wirelog

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger wraps *slog.Logger with the five severity methods the original
// sources called directly on a package-level logger.
type Logger struct {
	l *slog.Logger
}

// New wraps base, or slog.Default() if base is nil.
func New(base *slog.Logger) *Logger {
	if base == nil {
		base = slog.Default()
	}

	return &Logger{l: base}
}

// With returns a Logger whose output carries the given key/value pairs,
// mirroring slog.Logger.With.
func (lg *Logger) With(args ...any) *Logger {
	return &Logger{l: lg.l.With(args...)}
}

func (lg *Logger) Debugf(format string, args ...any) {
	lg.l.Debug(sprintf(format, args...))
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Info(sprintf(format, args...))
}

// Noticef logs at Info level with a "notice" tag, matching the original
// sources' five-level ladder (Debug/Info/Notice/Warning/Error) collapsed
// onto slog's Debug/Info/Warn/Error levels.
func (lg *Logger) Noticef(format string, args ...any) {
	lg.l.Info(sprintf(format, args...), "notice", true)
}

func (lg *Logger) Warningf(format string, args ...any) {
	lg.l.Warn(sprintf(format, args...))
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Error(sprintf(format, args...))
}

func (lg *Logger) Error(err error) {
	lg.l.Error(err.Error())
}

// DebugContext and InfoContext pass a context through to the underlying
// slog call so trace/span attributes attached via context propagate,
// matching slog's own context-aware API. The manager's event loop uses
// these to tag its lifecycle logs with the run context.
func (lg *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	lg.l.DebugContext(ctx, msg, args...)
}

func (lg *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	lg.l.InfoContext(ctx, msg, args...)
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}
