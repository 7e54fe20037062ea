package logger

import (
	"sort"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/SavinRazvan/hydra-logger/core"
)

// ZapCore returns a zapcore.Core that feeds zap records through this
// engine's pipeline for the given layer. Wire it into a zap logger
// with zap.New, or alongside other cores with zapcore.NewTee.
func (l *SyncLogger) ZapCore(layer string) zapcore.Core {
	return &zapCore{eng: l, layer: layer}
}

// ZapCore returns a zapcore.Core backed by the async engine.
func (l *AsyncLogger) ZapCore(layer string) zapcore.Core {
	return &zapCore{eng: l, layer: layer}
}

// zapCore adapts an engine to zapcore.Core. Level gating comes from
// the layer's effective thresholds, not a separate zap level.
type zapCore struct {
	eng    engine
	layer  string
	fields []core.Field
}

func (c *zapCore) Enabled(level zapcore.Level) bool {
	min, ok := c.eng.threshold(c.layer)
	if !ok {
		return false
	}
	return zapLevelToCore(level) >= min
}

func (c *zapCore) With(fs []zapcore.Field) zapcore.Core {
	clone := &zapCore{eng: c.eng, layer: c.layer}
	clone.fields = make([]core.Field, len(c.fields), len(c.fields)+len(fs))
	copy(clone.fields, c.fields)
	clone.fields = appendZapFields(clone.fields, fs)
	return clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	fields := make([]core.Field, 0, len(c.fields)+len(fs))
	fields = append(fields, c.fields...)
	fields = appendZapFields(fields, fs)
	return c.eng.Log(zapLevelToCore(ent.Level), c.layer, ent.Message, fields...)
}

// Sync is a no-op: the sync engine flushes per record and the async
// engine flushes per batch and on Close.
func (c *zapCore) Sync() error { return nil }

// zapLevelToCore maps zap levels onto the five-level scale. DPanic
// and above map to critical.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendZapFields decodes zap fields through a map encoder and carries
// the values over as typed fields. Keys come out sorted so output is
// deterministic.
func appendZapFields(fields []core.Field, fs []zapcore.Field) []core.Field {
	if len(fs) == 0 {
		return fields
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fs {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, fieldFromValue(k, enc.Fields[k]))
	}
	return fields
}

// fieldFromValue maps a decoded value onto the closest field type.
func fieldFromValue(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	case int:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int32:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: val}
	case uint64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case float32:
		return core.Field{Key: key, Type: core.Float64Type, Float64: float64(val)}
	case float64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: val}
	case time.Time:
		return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
	case error:
		return core.Field{Key: key, Type: core.ErrorType, Str: val.Error()}
	case map[string]interface{}:
		return core.Field{Key: key, Type: core.MapType, Any: val}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: val}
	}
}
