package logger

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/handler"
	"github.com/SavinRazvan/hydra-logger/monitor"
	"github.com/SavinRazvan/hydra-logger/redact"
)

// SyncLogger dispatches records to their destinations on the calling
// goroutine. Every method is safe for concurrent use; each record
// reaches a destination in a single write, so parallel emits never
// interleave inside a line.
type SyncLogger struct {
	*router
	factory *handler.Factory
	red     *redact.Redactor
	limiter *rate.Limiter
	mon     *monitor.Monitor
	errh    func(error)

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New builds a synchronous engine. Validation is the only failure
// mode: once New returns, logging calls never surface destination
// errors to the caller.
func New(cfg *config.Config, opts Options) (*SyncLogger, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if !cfg.Validated() {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	opts = opts.normalize()
	f := handler.NewFactory(handler.Options{
		ConsoleWriter: opts.ConsoleWriter,
		AutoFlush:     true,
		Hostname:      opts.Hostname,
	})
	return &SyncLogger{
		router:  newRouter(cfg, f, opts.Lazy, opts.ErrorHandler),
		factory: f,
		red:     opts.Redactor,
		limiter: opts.MaxLogRate,
		mon:     opts.Monitor,
		errh:    opts.ErrorHandler,
	}, nil
}

// emit runs the whole pipeline for one record: rate gate, resolve,
// level filter, redact, dispatch, count.
func (l *SyncLogger) emit(level core.Level, layer, msg string, fields []core.Field) {
	if l.closed.Load() {
		l.mon.RecordDrop(monitor.DropShutdown)
		return
	}
	if l.limiter != nil && !l.limiter.Allow() {
		l.mon.RecordDrop(monitor.DropRateLimited)
		return
	}
	routes := l.resolve(layer)
	if !passes(routes, level) {
		return
	}

	start := time.Now()
	rec := newRecord(level, layer, msg, fields, l.red)
	dispatch(routes, rec, l.mon, l.errh)
	core.PutRecord(rec)
	l.mon.RecordProcessed(layer, time.Since(start))
}

// Debug logs a debug message through the named layer.
func (l *SyncLogger) Debug(layer, msg string, fields ...core.Field) {
	l.emit(core.DebugLevel, layer, msg, fields)
}

// Info logs an info message through the named layer.
func (l *SyncLogger) Info(layer, msg string, fields ...core.Field) {
	l.emit(core.InfoLevel, layer, msg, fields)
}

// Warning logs a warning message through the named layer.
func (l *SyncLogger) Warning(layer, msg string, fields ...core.Field) {
	l.emit(core.WarningLevel, layer, msg, fields)
}

// Error logs an error message through the named layer.
func (l *SyncLogger) Error(layer, msg string, fields ...core.Field) {
	l.emit(core.ErrorLevel, layer, msg, fields)
}

// Critical logs a critical message through the named layer.
func (l *SyncLogger) Critical(layer, msg string, fields ...core.Field) {
	l.emit(core.CriticalLevel, layer, msg, fields)
}

// Log logs at an arbitrary level. The error return exists for parity
// with the async engine and is always nil here.
func (l *SyncLogger) Log(level core.Level, layer, msg string, fields ...core.Field) error {
	l.emit(level, layer, msg, fields)
	return nil
}

// Debugf logs a formatted debug message through the named layer.
func (l *SyncLogger) Debugf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.DebugLevel) {
		return
	}
	l.emit(core.DebugLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message through the named layer.
func (l *SyncLogger) Infof(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.InfoLevel) {
		return
	}
	l.emit(core.InfoLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a formatted warning message through the named layer.
func (l *SyncLogger) Warningf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.WarningLevel) {
		return
	}
	l.emit(core.WarningLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message through the named layer.
func (l *SyncLogger) Errorf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.ErrorLevel) {
		return
	}
	l.emit(core.ErrorLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a formatted critical message through the named layer.
func (l *SyncLogger) Criticalf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.CriticalLevel) {
		return
	}
	l.emit(core.CriticalLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Stats returns a snapshot of the engine's counters.
func (l *SyncLogger) Stats() monitor.Snapshot {
	return l.mon.Snapshot()
}

// Close flushes and closes every file destination. It is idempotent;
// records emitted after Close are dropped and counted.
func (l *SyncLogger) Close() error {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		l.closeErr = l.factory.Close()
	})
	return l.closeErr
}
