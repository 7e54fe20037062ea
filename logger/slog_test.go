package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlog_Fields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(consoleConfig("APP", "DEBUG"), Options{ConsoleWriter: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer log.Close()

	sl := log.Slog("APP")
	sl.Info("user logged in", "user", "alice", "attempt", 3)

	output := buf.String()
	for _, want := range []string{"[APP]", "[INFO]", "user logged in", "user=alice", "attempt=3"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestSlog_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(consoleConfig("APP", "ERROR"), Options{ConsoleWriter: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer log.Close()

	sl := log.Slog("APP")
	if sl.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(INFO) = true for an ERROR layer")
	}
	sl.Info("quiet")
	if buf.Len() > 0 {
		t.Errorf("Info passed an ERROR threshold: %s", buf.String())
	}

	sl.Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("Expected 'loud' in output, got: %s", buf.String())
	}

	// Levels above slog.LevelError map to critical.
	buf.Reset()
	sl.Log(context.Background(), slog.LevelError+4, "overload")
	if !strings.Contains(buf.String(), "[CRITICAL]") {
		t.Errorf("Expected '[CRITICAL]' in output, got: %s", buf.String())
	}
}

func TestSlog_Groups(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(consoleConfig("APP", "DEBUG"), Options{ConsoleWriter: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer log.Close()

	sl := log.Slog("APP").WithGroup("req").With("id", 7)
	sl.Info("handled", "method", "GET")

	output := buf.String()
	for _, want := range []string{"req.id=7", "req.method=GET"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	buf.Reset()
	log.Slog("APP").Info("query done", slog.Group("db", slog.String("host", "pg-1")))
	if !strings.Contains(buf.String(), "db.host=pg-1") {
		t.Errorf("Expected 'db.host=pg-1' in output, got: %s", buf.String())
	}
}

func TestSlog_UnroutedLayerDisabled(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(consoleConfig("APP", "DEBUG"), Options{ConsoleWriter: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer log.Close()

	sl := log.Slog("GHOST")
	if sl.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled() = true for a layer that routes nowhere")
	}
	sl.Error("nowhere to go")
	if buf.Len() > 0 {
		t.Errorf("unrouted layer produced output: %s", buf.String())
	}
	if got := log.Stats().Processed; got != 0 {
		t.Errorf("Stats().Processed = %d, want 0", got)
	}
}

func TestSlog_AsyncEngine(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewAsync(consoleConfig("APP", "INFO"), AsyncOptions{
		Options: Options{ConsoleWriter: &buf},
	})
	if err != nil {
		t.Fatalf("NewAsync() error = %v", err)
	}

	log.Slog("APP").Warn("buffered", "queue", "deep")
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"[WARNING]", "buffered", "queue=deep"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}
