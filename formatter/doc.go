// Package formatter defines how records are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Handlers
// check for WriterFormatter at construction time and prefer it when
// available, eliminating the intermediate byte slice allocation on
// the write path.
//
// Five formatters cover the supported destination encodings:
// TextFormatter (human-readable line, optionally ANSI-colored),
// JSONFormatter (one object per record with stable timestamp, level,
// layer, message keys), CSVFormatter (fixed column order, RFC 4180
// quoting), SyslogFormatter (severity-prefixed line) and GELFFormatter
// (GELF v1.1 objects). All of them emit exactly one newline-terminated
// record per call and never fail on record content; field values
// without a native encoding are stringified.
//
// The text, JSON, syslog and GELF formatters build their output
// manually into a pooled bytes.Buffer using Append-style functions
// (time.AppendFormat, strconv.AppendInt) to avoid per-call
// allocations. Buffers larger than 64 KiB are not returned to the
// pool to prevent a single large log line from permanently inflating
// memory usage.
package formatter
