package formatter

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/SavinRazvan/hydra-logger/core"
)

// CSVColumns is the fixed column order emitted by the CSV formatter.
// Structured fields are folded into the last column as space-separated
// key=value pairs.
var CSVColumns = []string{"timestamp", "level", "layer", "message", "fields"}

// CSVFormatter formats records as RFC 4180 style rows, one per line.
type CSVFormatter struct {
	Config
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(cfg Config) *CSVFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &CSVFormatter{Config: cfg}
}

// Format formats a record as a CSV row
func (f *CSVFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.writeRow(r, buf); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record as a CSV row and writes it with a single
// Write call.
func (f *CSVFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.writeRow(r, buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *CSVFormatter) writeRow(r *core.Record, w io.Writer) error {
	var fields strings.Builder
	for i, field := range r.Fields {
		if i > 0 {
			fields.WriteByte(' ')
		}
		fields.WriteString(field.Key)
		fields.WriteByte('=')
		fields.WriteString(field.StringValue())
	}

	cw := csv.NewWriter(w)
	err := cw.Write([]string{
		r.Time.Format(f.TimestampFormat),
		r.Level.String(),
		r.Layer,
		r.Message,
		fields.String(),
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
