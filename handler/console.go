package handler

import (
	"io"
	"sync"

	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/formatter"
)

// lockedWriter wraps an io.Writer with a shared mutex, acquiring the
// lock only for Write calls. Formatters prepare each record in their
// own pooled buffers and call Write once, so the lock is held only
// during the actual I/O and lines from handlers sharing the same
// stream never interleave.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return n, err
}

// ConsoleHandler writes records to a shared output stream, stdout by
// default. It never closes the stream; the caller owns it.
type ConsoleHandler struct {
	out             *lockedWriter
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
}

// NewConsoleHandler creates a console handler writing through w under
// mu. Handlers built for the same stream must share the same mutex.
func NewConsoleHandler(w io.Writer, mu *sync.Mutex, f formatter.Formatter) *ConsoleHandler {
	h := &ConsoleHandler{
		out:       &lockedWriter{mu: mu, w: w},
		formatter: f,
	}
	// Cache WriterFormatter for zero-alloc path
	h.writerFormatter, _ = f.(formatter.WriterFormatter)
	return h
}

// Handle formats and writes a record
func (h *ConsoleHandler) Handle(r *core.Record) error {
	if h.writerFormatter != nil {
		return h.writerFormatter.FormatTo(r, h.out)
	}

	data, err := h.formatter.Format(r)
	if err != nil {
		return err
	}
	_, err = h.out.Write(data)
	return err
}

// Close is a no-op; the stream belongs to the caller.
func (h *ConsoleHandler) Close() error {
	return nil
}
