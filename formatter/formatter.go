package formatter

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
)

// Formatter serializes one record into destination-ready bytes.
// Implementations never fail on record content; values that cannot be
// encoded natively are stringified.
type Formatter interface {
	// Format formats a record into bytes, including the trailing newline.
	Format(r *core.Record) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters implement
// to write directly to a writer without an intermediate byte slice.
type WriterFormatter interface {
	// FormatTo formats a record and writes it directly to the writer.
	FormatTo(r *core.Record, w io.Writer) error
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// Hostname overrides the host reported by the syslog and GELF
	// formatters (empty means os.Hostname).
	Hostname string
	// Color enables ANSI coloring. Honored by the plain-text
	// formatter only.
	Color bool
}

// ForFormat returns the formatter for a destination format. Formats
// outside the known set fall back to plain text; validated configs
// never reach the fallback.
func ForFormat(f config.Format, cfg Config) Formatter {
	switch f {
	case config.FormatJSON:
		return NewJSONFormatter(cfg)
	case config.FormatCSV:
		return NewCSVFormatter(cfg)
	case config.FormatSyslog:
		return NewSyslogFormatter(cfg)
	case config.FormatGELF:
		return NewGELFFormatter(cfg)
	default:
		return NewTextFormatter(cfg)
	}
}

func resolveHostname(h string) string {
	if h != "" {
		return h
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "localhost"
	}
	return host
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
