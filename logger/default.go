package logger

import (
	"sync"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
)

var (
	defaultLogger *SyncLogger
	defaultMu     sync.RWMutex
)

func init() {
	cfg := &config.Config{
		Layers: map[string]config.Layer{
			config.DefaultLayerName: {
				Destinations: []config.Destination{{Type: config.Console}},
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	l, err := New(cfg, Options{})
	if err != nil {
		panic(err)
	}
	defaultLogger = l
}

// Default returns the package-level logger: a synchronous engine with
// a single console DEFAULT layer at InfoLevel.
func Default() *SyncLogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l *SyncLogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug logs a debug message through the default logger.
func Debug(layer, msg string, fields ...core.Field) {
	Default().Debug(layer, msg, fields...)
}

// Info logs an info message through the default logger.
func Info(layer, msg string, fields ...core.Field) {
	Default().Info(layer, msg, fields...)
}

// Warning logs a warning message through the default logger.
func Warning(layer, msg string, fields ...core.Field) {
	Default().Warning(layer, msg, fields...)
}

// Error logs an error message through the default logger.
func Error(layer, msg string, fields ...core.Field) {
	Default().Error(layer, msg, fields...)
}

// Critical logs a critical message through the default logger.
func Critical(layer, msg string, fields ...core.Field) {
	Default().Critical(layer, msg, fields...)
}

// Debugf logs a formatted debug message through the default logger.
func Debugf(layer, format string, args ...interface{}) {
	Default().Debugf(layer, format, args...)
}

// Infof logs a formatted info message through the default logger.
func Infof(layer, format string, args ...interface{}) {
	Default().Infof(layer, format, args...)
}

// Warningf logs a formatted warning message through the default logger.
func Warningf(layer, format string, args ...interface{}) {
	Default().Warningf(layer, format, args...)
}

// Errorf logs a formatted error message through the default logger.
func Errorf(layer, format string, args ...interface{}) {
	Default().Errorf(layer, format, args...)
}

// Criticalf logs a formatted critical message through the default logger.
func Criticalf(layer, format string, args ...interface{}) {
	Default().Criticalf(layer, format, args...)
}
