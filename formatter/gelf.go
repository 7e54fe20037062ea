package formatter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/SavinRazvan/hydra-logger/core"
)

// GELFFormatter formats records as GELF v1.1 JSON objects, one per
// line: version, host, short_message, timestamp (unix seconds with
// millisecond precision) and the numeric syslog severity as level.
// The layer and any structured fields become additional fields with
// the underscore prefix GELF requires.
type GELFFormatter struct {
	Config
}

// NewGELFFormatter creates a new GELF formatter
func NewGELFFormatter(cfg Config) *GELFFormatter {
	cfg.Hostname = resolveHostname(cfg.Hostname)
	return &GELFFormatter{Config: cfg}
}

// Format formats a record as a GELF object
func (f *GELFFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(r, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *GELFFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

func (f *GELFFormatter) formatToBuffer(r *core.Record, buf *bytes.Buffer) {
	buf.WriteString(`{"version":"1.1","host":"`)
	appendJSONString(buf, f.Hostname)
	buf.WriteByte('"')

	buf.WriteString(`,"short_message":"`)
	appendJSONString(buf, r.Message)
	buf.WriteByte('"')

	buf.WriteString(`,"timestamp":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), r.Time.Unix(), 10))
	buf.WriteByte('.')
	ms := r.Time.Nanosecond() / int(1e6)
	buf.WriteByte('0' + byte(ms/100))
	buf.WriteByte('0' + byte(ms/10%10))
	buf.WriteByte('0' + byte(ms%10))

	buf.WriteString(`,"level":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(core.SyslogSeverity(r.Level)), 10))

	if r.Layer != "" {
		buf.WriteString(`,"_layer":"`)
		appendJSONString(buf, r.Layer)
		buf.WriteByte('"')
	}

	for _, field := range r.Fields {
		buf.WriteString(`,"`)
		appendJSONString(buf, gelfKey(field.Key))
		buf.WriteString(`":`)
		appendJSONFieldValue(buf, field)
	}

	buf.WriteString("}\n")
}

// gelfKey prefixes an additional-field key with an underscore.
// GELF reserves "_id", so a field named "id" becomes "_id_".
func gelfKey(key string) string {
	if key == "id" {
		return "_id_"
	}
	return "_" + key
}
