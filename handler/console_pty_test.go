//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd || solaris

package handler

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/creack/pty"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
)

// TestFactory_ColorAutoOnTerminal verifies that color_mode auto turns
// coloring on when the console stream is a real terminal.
func TestFactory_ColorAutoOnTerminal(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, master)
		close(done)
	}()

	f := NewFactory(Options{ConsoleWriter: slave})
	h, err := f.Build(validated(t, config.Destination{Type: config.Console, ColorMode: config.ColorAuto}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := h.Handle(record(core.InfoLevel, "TTY", "colored on terminals")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	_ = slave.Close()
	<-done
	_ = master.Close()

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected ANSI codes on a pty, got: %q", buf.String())
	}
}
