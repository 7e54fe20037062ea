package handler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/formatter"
)

const fileBufferSize = 4096

// fileWriter owns one log file: its buffered writer, its size
// accounting and its rotation. Handlers for destinations that share a
// path share one fileWriter, so rotation has a single critical
// section per file.
type fileWriter struct {
	filename    string
	mu          sync.Mutex
	file        *os.File
	buf         *bufio.Writer
	maxSize     int64
	backupCount int
	currentSize int64
	closed      bool
}

// newFileWriter opens (or creates) the log file, creating parent
// directories as needed. currentSize starts at the existing file size
// so restarts keep honoring max_size.
func newFileWriter(filename string, maxSize int64, backupCount int) (*fileWriter, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &fileWriter{
		filename:    filename,
		file:        file,
		buf:         bufio.NewWriterSize(file, fileBufferSize),
		maxSize:     maxSize,
		backupCount: backupCount,
		currentSize: info.Size(),
	}, nil
}

// writeRecord appends one encoded record, rotating first when the
// write would push the file past maxSize. flush forces the buffered
// writer through to the OS before returning.
func (w *fileWriter) writeRecord(data []byte, flush bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("file handler %s is closed", w.filename)
	}

	if w.maxSize > 0 && w.currentSize > 0 && w.currentSize+int64(len(data)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return err
		}
	}

	n, err := w.buf.Write(data)
	w.currentSize += int64(n)
	if err != nil {
		return err
	}

	if flush {
		return w.buf.Flush()
	}
	return nil
}

// rotate shifts base.log -> base.log.1 -> ... -> base.log.N, deleting
// anything beyond backupCount, then reopens a fresh file. With
// backupCount 0 the current file is truncated in place. Caller holds
// the lock.
func (w *fileWriter) rotate() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}

	if w.backupCount == 0 {
		file, err := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		w.file = file
		w.buf.Reset(file)
		w.currentSize = 0
		return nil
	}

	// Shift existing backups up, oldest first.
	for i := w.backupCount - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", w.filename, i)
		dst := fmt.Sprintf("%s.%d", w.filename, i+1)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		os.Remove(dst)
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}

	first := w.filename + ".1"
	os.Remove(first)
	if err := os.Rename(w.filename, first); err != nil {
		// Reopen in place so logging can continue on the old file.
		file, openErr := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		w.file = file
		w.buf.Reset(file)
		return err
	}

	file, err := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	w.file = file
	w.buf.Reset(file)
	w.currentSize = 0
	return nil
}

// flush pushes buffered bytes to the OS.
func (w *fileWriter) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	return w.buf.Flush()
}

// close flushes, syncs and closes the file. Idempotent.
func (w *fileWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// FileHandler binds one destination's formatter to a (possibly
// shared) fileWriter.
type FileHandler struct {
	writer    *fileWriter
	formatter formatter.Formatter
	autoFlush bool
}

// Handle formats and writes a record
func (h *FileHandler) Handle(r *core.Record) error {
	data, err := h.formatter.Format(r)
	if err != nil {
		return err
	}
	return h.writer.writeRecord(data, h.autoFlush)
}

// Flush pushes buffered bytes to the OS. Batch consumers call this at
// batch boundaries.
func (h *FileHandler) Flush() error {
	return h.writer.flush()
}

// Close flushes the handler. The underlying file is owned by the
// Factory and closed there.
func (h *FileHandler) Close() error {
	return h.writer.flush()
}

// Filename returns the path this handler writes to.
func (h *FileHandler) Filename() string {
	return h.writer.filename
}
