package formatter

import (
	"bytes"
	"io"
	"time"

	"github.com/SavinRazvan/hydra-logger/core"
)

// TextFormatter formats records as human-readable text:
//
//	2026-01-02T15:04:05Z [INFO] [APP] user logged in user_id=42
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats a record as text
func (f *TextFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(r, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.DebugLevel:    " [DEBUG] ",
	core.InfoLevel:     " [INFO] ",
	core.WarningLevel:  " [WARNING] ",
	core.ErrorLevel:    " [ERROR] ",
	core.CriticalLevel: " [CRITICAL] ",
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(r *core.Record, buf *bytes.Buffer) {
	// Timestamp - use AppendFormat to avoid string allocation
	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	// Level - use pre-formatted string
	if f.Color {
		buf.WriteByte(' ')
		buf.WriteString(levelColor(r.Level))
		buf.WriteByte('[')
		buf.WriteString(r.Level.String())
		buf.WriteByte(']')
		buf.WriteString(ansiReset)
		buf.WriteByte(' ')
	} else if int(r.Level) >= 0 && int(r.Level) < len(levelBrackets) {
		buf.WriteString(levelBrackets[r.Level])
	} else {
		buf.WriteString(" [UNKNOWN] ")
	}

	// Layer
	if r.Layer != "" {
		if f.Color {
			buf.WriteString(ansiCyan)
			buf.WriteByte('[')
			buf.WriteString(r.Layer)
			buf.WriteByte(']')
			buf.WriteString(ansiReset)
			buf.WriteByte(' ')
		} else {
			buf.WriteByte('[')
			buf.WriteString(r.Layer)
			buf.WriteString("] ")
		}
	}

	// Message
	buf.WriteString(r.Message)

	// Fields
	for _, field := range r.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
