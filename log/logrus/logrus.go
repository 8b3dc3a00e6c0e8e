// Package logrus routes the d3d11 debug log through a logrus logger.
//
//	l := logrus.New()
//	d3d11.SetLogger(d3d11logrus.NewLogger(l))
package logrus

import (
	"context"
	"log/slog"

	"github.com/sirupsen/logrus"
)

var _ slog.Handler = Handler{}

// Handler adapts a *logrus.Logger to slog.Handler so it can be
// installed with d3d11.SetLogger.
type Handler struct {
	l      *logrus.Logger
	fields logrus.Fields
	prefix string
}

// NewLogger wraps l in a slog.Logger ready for d3d11.SetLogger.
func NewLogger(l *logrus.Logger) *slog.Logger {
	return slog.New(Handler{l: l})
}

func (h Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.IsLevelEnabled(logrusLevel(level))
}

func (h Handler) Handle(_ context.Context, r slog.Record) error {
	fields := make(logrus.Fields, len(h.fields)+r.NumAttrs())
	for k, v := range h.fields {
		fields[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, a, h.prefix)
		return true
	})
	h.l.WithFields(fields).Log(logrusLevel(r.Level), r.Message)
	return nil
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make(logrus.Fields, len(h.fields)+len(attrs))
	for k, v := range h.fields {
		fields[k] = v
	}
	for _, a := range attrs {
		addAttr(fields, a, h.prefix)
	}
	return Handler{l: h.l, fields: fields, prefix: h.prefix}
}

func (h Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return Handler{l: h.l, fields: h.fields, prefix: h.prefix + name + "."}
}

func addAttr(fields logrus.Fields, a slog.Attr, prefix string) {
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(fields, ga, p)
		}
		return
	}
	fields[prefix+a.Key] = a.Value.Any()
}

func logrusLevel(level slog.Level) logrus.Level {
	switch {
	case level >= slog.LevelError:
		return logrus.ErrorLevel
	case level >= slog.LevelWarn:
		return logrus.WarnLevel
	case level >= slog.LevelInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
