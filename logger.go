package gpuobj

import (
	"context"
	"log/slog"
	"strconv"
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

// loggerPtr stores the package logger. Accessed atomically so that SetLogger
// can be called while contexts on other threads are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the default logger for gpuobj.
// By default, gpuobj produces no log output. Pass nil to restore silence.
//
// Contexts capture the logger when they are created; use [WithLogger] to give
// a single context its own logger.
//
// Log levels used by gpuobj:
//   - [slog.LevelDebug]: object creation, reallocation and deletion
//   - [slog.LevelInfo]: context lifecycle and backend selection
//   - [slog.LevelWarn]: skipped deletes and objects reclaimed by the collector
//
// Example:
//
//	gpuobj.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current default logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// resolveLogger returns l, or the package logger when l is nil. The result
// is what backends receive through driver.Options.
func resolveLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Logger()
	}
	return l
}

// contextLogger tags every record of one context with its label, or with
// its generation when unlabeled, so output from several contexts can be
// told apart.
func contextLogger(base *slog.Logger, label string, generation uint64) *slog.Logger {
	if label == "" {
		label = "#" + strconv.FormatUint(generation, 10)
	}
	return base.With("context", label)
}
