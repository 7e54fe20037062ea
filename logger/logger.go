package logger

import (
	"log/slog"

	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/monitor"
	"github.com/SavinRazvan/hydra-logger/redact"
)

// engine is the emit surface shared by SyncLogger and AsyncLogger.
// The interop bridges in slog.go and zap.go run on it.
type engine interface {
	Log(level core.Level, layer, msg string, fields ...core.Field) error
	threshold(name string) (core.Level, bool)
}

var (
	_ engine = (*SyncLogger)(nil)
	_ engine = (*AsyncLogger)(nil)

	_ slog.Handler = (*slogHandler)(nil)
)

// newRecord builds a pooled record for one emit, redacting the message
// and fields first when redaction is on. The caller returns the record
// with core.PutRecord after dispatch.
func newRecord(level core.Level, layer, msg string, fields []core.Field, red *redact.Redactor) *core.Record {
	if red.Enabled() {
		msg = red.RedactString(msg)
		fields = red.RedactFields(fields)
	}
	rec := core.GetRecord()
	rec.Level = level
	rec.Layer = layer
	rec.Message = msg
	rec.Fields = append(rec.Fields, fields...)
	return rec
}

// passes reports whether at least one route accepts the level. Emits
// that pass nowhere skip record construction entirely.
func passes(routes []route, level core.Level) bool {
	for _, rt := range routes {
		if level >= rt.level {
			return true
		}
	}
	return false
}

// dispatch writes one record through every route whose threshold it
// meets. A failed write is counted and reported, and the remaining
// routes still run.
func dispatch(routes []route, rec *core.Record, mon *monitor.Monitor, errh func(error)) {
	for _, rt := range routes {
		if rec.Level < rt.level {
			continue
		}
		if err := rt.h.Handle(rec); err != nil {
			mon.RecordWriteError()
			errh(err)
		}
	}
}
