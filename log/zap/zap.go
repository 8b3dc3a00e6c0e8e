// Package zap routes the d3d11 debug log through a zap logger.
//
//	logger, _ := zap.NewDevelopment()
//	d3d11.SetLogger(d3d11zap.NewLogger(logger))
package zap

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ slog.Handler = Handler{}

// Handler adapts a *zap.Logger to slog.Handler so it can be installed
// with d3d11.SetLogger.
type Handler struct {
	l      *zap.Logger
	prefix string
}

// NewLogger wraps l in a slog.Logger ready for d3d11.SetLogger.
func NewLogger(l *zap.Logger) *slog.Logger {
	return slog.New(Handler{l: l})
}

func (h Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Core().Enabled(zapLevel(level))
}

func (h Handler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, a, h.prefix)
		return true
	})
	h.l.Log(zapLevel(r.Level), r.Message, fields...)
	return nil
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, 0, len(attrs))
	for _, a := range attrs {
		fields = appendAttr(fields, a, h.prefix)
	}
	return Handler{l: h.l.With(fields...), prefix: h.prefix}
}

func (h Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return Handler{l: h.l, prefix: h.prefix + name + "."}
}

func appendAttr(fields []zap.Field, a slog.Attr, prefix string) []zap.Field {
	if a.Equal(slog.Attr{}) {
		return fields
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, ga, p)
		}
		return fields
	}
	return append(fields, zap.Any(prefix+a.Key, a.Value.Any()))
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
