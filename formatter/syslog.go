package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/SavinRazvan/hydra-logger/core"
)

// SyslogFormatter formats records as severity-prefixed syslog style
// lines:
//
//	<6>2026-01-02T15:04:05Z myhost APP: user logged in user_id=42
//
// The numeric prefix is the syslog severity of the record's level
// (DEBUG=7, INFO=6, WARNING=4, ERROR=3, CRITICAL=2).
type SyslogFormatter struct {
	Config
}

// NewSyslogFormatter creates a new syslog formatter
func NewSyslogFormatter(cfg Config) *SyslogFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	cfg.Hostname = resolveHostname(cfg.Hostname)
	return &SyslogFormatter{Config: cfg}
}

// Format formats a record as a syslog line
func (f *SyslogFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(r, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *SyslogFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

func (f *SyslogFormatter) formatToBuffer(r *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(core.SyslogSeverity(r.Level)), 10))
	buf.WriteByte('>')

	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte(' ')
	buf.WriteString(f.Hostname)
	buf.WriteByte(' ')
	if r.Layer != "" {
		buf.WriteString(r.Layer)
	} else {
		buf.WriteString("-")
	}
	buf.WriteString(": ")
	buf.WriteString(r.Message)

	for _, field := range r.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
