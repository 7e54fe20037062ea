package logger

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/SavinRazvan/hydra-logger/monitor"
	"github.com/SavinRazvan/hydra-logger/redact"
)

// Options tunes an engine beyond what the config carries. The zero
// value is ready to use.
type Options struct {
	// Redactor scrubs messages and field values before dispatch.
	// Nil disables redaction.
	Redactor *redact.Redactor

	// ConsoleWriter is the stream console destinations write to.
	// Defaults to os.Stdout.
	ConsoleWriter io.Writer

	// Hostname overrides the host name in syslog and GELF output.
	// Empty means os.Hostname.
	Hostname string

	// Lazy defers handler construction to the first emit.
	Lazy bool

	// MaxLogRate caps record admission across all layers. Records over
	// the limit are dropped and counted. Nil means no cap.
	MaxLogRate *rate.Limiter

	// ErrorHandler receives internal warnings: handler creation
	// failures, write errors, records lost at close. Defaults to one
	// line on stderr per warning.
	ErrorHandler func(error)

	// Monitor collects the engine's counters. Defaults to a fresh
	// monitor per engine.
	Monitor *monitor.Monitor
}

// normalize fills defaults on a copy, leaving the caller's Options
// untouched.
func (o Options) normalize() Options {
	if o.Redactor == nil {
		o.Redactor = redact.NewDisabled()
	}
	if o.ErrorHandler == nil {
		o.ErrorHandler = func(err error) {
			fmt.Fprintf(os.Stderr, "hydra: %v\n", err)
		}
	}
	if o.Monitor == nil {
		o.Monitor = monitor.New()
	}
	return o
}
