// Package charm routes the d3d11 debug log through a charmbracelet
// logger. The charm logger speaks slog natively, so the bridge is a
// thin convenience around slog.New.
package charm

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// NewLogger wraps l in a slog.Logger ready for d3d11.SetLogger.
func NewLogger(l *log.Logger) *slog.Logger {
	return slog.New(l)
}

// NewDebugLogger builds a logger tuned for cache debugging: debug
// level, timestamps and the given prefix.
func NewDebugLogger(w io.Writer, prefix string) *slog.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	l.SetLevel(log.DebugLevel)
	return slog.New(l)
}
