package life

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// loggerHooks are notified whenever the logger changes. Sub-packages
// register here to share the same configuration without import cycles.
var loggerHooks atomic.Pointer[[]func(*slog.Logger)]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for life and its sub-packages.
// By default no log output is produced. Pass nil to restore silence.
//
// Log levels:
//   - [slog.LevelDebug]: pipeline creation, buffer sizes, dispatch sizes
//   - [slog.LevelInfo]: lifecycle events (adapter selected, simulation started)
//   - [slog.LevelWarn]: non-fatal issues (resource release errors)
//
// Example:
//
//	life.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	if hooks := loggerHooks.Load(); hooks != nil {
		for _, fn := range *hooks {
			fn(l)
		}
	}
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// OnLoggerChange registers fn to be called with the new logger each time
// SetLogger runs. fn is also called immediately with the current logger.
func OnLoggerChange(fn func(*slog.Logger)) {
	for {
		old := loggerHooks.Load()
		var next []func(*slog.Logger)
		if old != nil {
			next = append(next, *old...)
		}
		next = append(next, fn)
		if loggerHooks.CompareAndSwap(old, &next) {
			break
		}
	}
	fn(Logger())
}
