// Package logging carries the single structured logger shared by the
// subsystems of the core, so every package that logs reaches the same
// configurable sink without introducing import cycles between subsystems.
// The icd loader, the compute core and the descriptor manager log through
// it; the allocator, barrier and timeline packages return errors without
// logging.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records. Enabled returns false so
// the caller skips message formatting entirely, making disabled logging
// effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by every package in this module.
// Pass nil to restore the silent default. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Subsystem returns a logger pre-tagged with the owning subsystem name, the
// shape spec.md §7 requires of every error-path log line (subsystem,
// operation, cause).
func Subsystem(name string) *slog.Logger {
	return Logger().With("subsystem", name)
}
