package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSlogBridge wraps the zap-backed logger in a slog.Handler so packages
// written against log/slog share the same core, encoder and mirror.
func NewSlogBridge(logger *Logger) *slog.Logger {
	if logger == nil {
		logger = Default()
	}
	return slog.New(&slogHandler{logger: logger})
}

type slogHandler struct {
	logger *Logger
	attrs  []any
	group  string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Zap().Core().Enabled(zapLevelFromSlog(level))
}

func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	args := make([]any, 0, len(h.attrs)+record.NumAttrs()*2)
	args = append(args, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		args = append(args, h.attrKey(attr.Key), attr.Value.Resolve().Any())
		return true
	})

	level := zapLevelFromSlog(record.Level)
	fields := append(zapFields(args), traceFields(ctx)...)
	if ce := h.logger.Zap().Check(level, record.Message); ce != nil {
		ce.Write(fields...)
	}
	mirrorRecord(ctx, level, record.Message, args)
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &slogHandler{
		logger: h.logger,
		attrs:  append([]any(nil), h.attrs...),
		group:  h.group,
	}
	for _, attr := range attrs {
		next.attrs = append(next.attrs, h.attrKey(attr.Key), attr.Value.Resolve().Any())
	}
	return next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	prefix := name
	if h.group != "" {
		prefix = h.group + "." + name
	}
	return &slogHandler{
		logger: h.logger,
		attrs:  append([]any(nil), h.attrs...),
		group:  prefix,
	}
}

func (h *slogHandler) attrKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func zapLevelFromSlog(level slog.Level) zapcore.Level {
	switch {
	case level < slog.LevelInfo:
		return zap.DebugLevel
	case level < slog.LevelWarn:
		return zap.InfoLevel
	case level < slog.LevelError:
		return zap.WarnLevel
	default:
		return zap.ErrorLevel
	}
}
