package handler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/term"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/formatter"
)

// CreationError reports a destination that could not be built. The
// router treats it as a warning: the destination is dropped, its
// siblings keep working, and no logging call ever sees it.
type CreationError struct {
	Type config.DestinationType
	Path string
	Err  error
}

func (e *CreationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("creating %s handler for %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("creating %s handler: %v", e.Type, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Options configures a Factory.
type Options struct {
	// ConsoleWriter is the stream console destinations write to
	// (default: os.Stdout).
	ConsoleWriter io.Writer
	// AutoFlush makes file handlers flush after every record. Sync
	// engines set this; async engines flush per batch instead.
	AutoFlush bool
	// Hostname overrides the host reported by syslog and GELF output
	// (empty means os.Hostname).
	Hostname string
}

// Factory builds destination handlers and owns the resources they
// share: one mutex for the console stream and one fileWriter per log
// file path, so two layers routing to the same file share a single
// rotation critical section.
type Factory struct {
	opts      Options
	consoleMu sync.Mutex

	mu    sync.Mutex
	files map[string]*fileWriter
}

// NewFactory creates a handler factory.
func NewFactory(opts Options) *Factory {
	if opts.ConsoleWriter == nil {
		opts.ConsoleWriter = os.Stdout
	}
	return &Factory{
		opts:  opts,
		files: make(map[string]*fileWriter),
	}
}

// Build constructs the handler for one destination. Failures come
// back as a *CreationError; Build never panics.
func (f *Factory) Build(d config.Destination) (Handler, error) {
	switch d.Type {
	case config.Console:
		return NewConsoleHandler(f.opts.ConsoleWriter, &f.consoleMu, f.newFormatter(d, f.colorEnabled(d.ColorMode))), nil

	case config.File:
		w, err := f.fileWriterFor(d)
		if err != nil {
			return nil, &CreationError{Type: d.Type, Path: d.Path, Err: err}
		}
		return &FileHandler{
			writer:    w,
			formatter: f.newFormatter(d, false),
			autoFlush: f.opts.AutoFlush,
		}, nil

	default:
		return nil, &CreationError{Type: d.Type, Err: fmt.Errorf("unknown destination type")}
	}
}

// fileWriterFor returns the cached writer for the destination's path,
// creating it on first use. The first destination to claim a path
// fixes its rotation settings; later destinations sharing the path
// reuse them.
func (f *Factory) fileWriterFor(d config.Destination) (*fileWriter, error) {
	abs, err := filepath.Abs(d.Path)
	if err != nil {
		abs = d.Path
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if w, ok := f.files[abs]; ok {
		return w, nil
	}

	w, err := newFileWriter(abs, d.SizeLimit(), d.BackupCount)
	if err != nil {
		return nil, err
	}
	f.files[abs] = w
	return w, nil
}

// newFormatter builds the formatter for a destination's format.
func (f *Factory) newFormatter(d config.Destination, color bool) formatter.Formatter {
	return formatter.ForFormat(d.Format, formatter.Config{Hostname: f.opts.Hostname, Color: color})
}

// fdWriter is implemented by *os.File and anything else exposing a
// file descriptor.
type fdWriter interface {
	Fd() uintptr
}

// colorEnabled resolves a destination's color_mode against the
// console stream: always and never are unconditional, auto means the
// stream is a real terminal.
func (f *Factory) colorEnabled(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if fw, ok := f.opts.ConsoleWriter.(fdWriter); ok {
			return term.IsTerminal(int(fw.Fd()))
		}
		return false
	}
}

// Close closes every file the factory opened. Handlers flush in their
// own Close; this is the one place files are actually closed.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for _, w := range f.files {
		if err := w.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
