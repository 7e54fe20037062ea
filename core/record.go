package core

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log record
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarningLevel for warning messages
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for critical failures that demand attention
	CriticalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. It accepts the canonical
// names DEBUG, INFO, WARNING, ERROR and CRITICAL in any case, plus the
// common aliases WARN and FATAL.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid log level: %q", s)
	}
}

// SyslogSeverity maps a Level onto the syslog numeric severity scale
// (RFC 5424): DEBUG=7, INFO=6, WARNING=4, ERROR=3, CRITICAL=2.
// Unknown levels map to 6 (informational).
func SyslogSeverity(l Level) int {
	switch l {
	case DebugLevel:
		return 7
	case InfoLevel:
		return 6
	case WarningLevel:
		return 4
	case ErrorLevel:
		return 3
	case CriticalLevel:
		return 2
	default:
		return 6
	}
}

// Record represents a single log event routed through a layer.
// Once constructed it is treated as immutable: redaction and dispatch
// work on copies, never in place.
type Record struct {
	Time    time.Time
	Level   Level
	Layer   string
	Message string
	Fields  []Field
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetRecord retrieves a Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	r.Fields = r.Fields[:0]
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	r.Fields = r.Fields[:0]
	r.Layer = ""
	r.Message = ""
	recordPool.Put(r)
}
