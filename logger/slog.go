package logger

import (
	"context"
	"log/slog"

	"github.com/SavinRazvan/hydra-logger/core"
)

// Slog returns a standard library logger whose records flow through
// this engine's pipeline for the given layer.
func (l *SyncLogger) Slog(layer string) *slog.Logger {
	return slog.New(&slogHandler{eng: l, layer: layer})
}

// Slog returns a standard library logger backed by the async engine.
func (l *AsyncLogger) Slog(layer string) *slog.Logger {
	return slog.New(&slogHandler{eng: l, layer: layer})
}

// slogHandler adapts an engine to slog.Handler for one layer.
type slogHandler struct {
	eng   engine
	layer string
	attrs []core.Field
	group string
}

// Enabled reports whether any of the layer's destinations would
// accept the level, so disabled records cost no allocation.
func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	min, ok := h.eng.threshold(h.layer)
	if !ok {
		return false
	}
	return slogLevelToCore(level) >= min
}

// Handle converts a slog.Record and emits it through the engine.
func (h *slogHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]core.Field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendSlogAttr(fields, h.group, a)
		return true
	})
	return h.eng.Log(slogLevelToCore(record.Level), h.layer, record.Message, fields...)
}

// WithAttrs returns a handler carrying additional attributes.
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(fields, h.attrs)
	for _, a := range attrs {
		fields = appendSlogAttr(fields, h.group, a)
	}
	return &slogHandler{eng: h.eng, layer: h.layer, attrs: fields, group: h.group}
}

// WithGroup returns a handler that prefixes subsequent attribute keys
// with the group name.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &slogHandler{eng: h.eng, layer: h.layer, attrs: h.attrs, group: group}
}

// slogLevelToCore maps slog levels onto the five-level scale. Levels
// above slog.LevelError map to critical.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendSlogAttr converts one attribute, flattening groups into
// dot-prefixed keys.
func appendSlogAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Type: core.Int64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		v := int64(0)
		if a.Value.Bool() {
			v = 1
		}
		return append(fields, core.Field{Key: key, Type: core.BoolType, Int64: v})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		// An inline group (empty key) keeps the enclosing prefix.
		g := key
		if a.Key == "" {
			g = group
		}
		for _, ga := range a.Value.Group() {
			fields = appendSlogAttr(fields, g, ga)
		}
		return fields
	default:
		return append(fields, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
