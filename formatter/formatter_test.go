package formatter

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
)

func TestTextFormatter_Basic(t *testing.T) {
	f := NewTextFormatter(Config{})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test message",
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2026-02-18T13:00:00Z [INFO] [APP] test message\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}
}

func TestTextFormatter_WithFields(t *testing.T) {
	f := NewTextFormatter(Config{})

	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.Contains(output, "key1=value1") {
		t.Errorf("Expected 'key1=value1' in output, got: %s", output)
	}
	if !strings.Contains(output, "key2=42") {
		t.Errorf("Expected 'key2=42' in output, got: %s", output)
	}
}

func TestTextFormatter_NoLayer(t *testing.T) {
	f := NewTextFormatter(Config{})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.ErrorLevel,
		Message: "bare",
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2026-02-18T13:00:00Z [ERROR] bare\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}
}

func TestTextFormatter_Color(t *testing.T) {
	f := NewTextFormatter(Config{Color: true})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.WarningLevel,
		Layer:   "API",
		Message: "slow request",
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.Contains(output, ansiYellow+"[WARNING]"+ansiReset) {
		t.Errorf("Expected colored level token in output, got: %q", output)
	}
	if !strings.Contains(output, ansiCyan+"[API]"+ansiReset) {
		t.Errorf("Expected colored layer token in output, got: %q", output)
	}

	plain := NewTextFormatter(Config{})
	uncolored, _ := plain.Format(r)
	if strings.Contains(string(uncolored), "\x1b[") {
		t.Errorf("Expected no escape codes without Color, got: %q", uncolored)
	}
}

func TestJSONFormatter_Basic(t *testing.T) {
	f := NewJSONFormatter(Config{})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test message",
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// Verify it's valid JSON
	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if data["level"] != "INFO" {
		t.Errorf("Expected level 'INFO', got: %v", data["level"])
	}
	if data["layer"] != "APP" {
		t.Errorf("Expected layer 'APP', got: %v", data["layer"])
	}
	if data["message"] != "test message" {
		t.Errorf("Expected message 'test message', got: %v", data["message"])
	}
	if data["timestamp"] != "2026-02-18T13:00:00Z" {
		t.Errorf("Expected RFC3339 timestamp, got: %v", data["timestamp"])
	}
}

func TestJSONFormatter_StableKeyOrder(t *testing.T) {
	f := NewJSONFormatter(Config{})

	r := &core.Record{
		Time:    time.Now(),
		Level:   core.DebugLevel,
		Layer:   "DB",
		Message: "query",
		Fields:  []core.Field{{Key: "rows", Type: core.IntType, Int64: 3}},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.HasPrefix(output, `{"timestamp":`) {
		t.Errorf("Expected timestamp first, got: %s", output)
	}
	order := []string{`"timestamp"`, `"level"`, `"layer"`, `"message"`, `"rows"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(output, key)
		if idx < 0 {
			t.Fatalf("Expected %s in output, got: %s", key, output)
		}
		if idx < last {
			t.Errorf("Key %s out of order in output: %s", key, output)
		}
		last = idx
	}
}

func TestJSONFormatter_WithFields(t *testing.T) {
	f := NewJSONFormatter(Config{})

	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test",
		Fields: []core.Field{
			{Key: "str", Type: core.StringType, Str: "value"},
			{Key: "int", Type: core.IntType, Int64: 42},
			{Key: "bool", Type: core.BoolType, Int64: 1},
			{Key: "pi", Type: core.Float64Type, Float64: 3.5},
			{Key: "ctx", Type: core.MapType, Any: map[string]interface{}{"user": "alice"}},
		},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if data["str"] != "value" {
		t.Errorf("Expected str='value', got: %v", data["str"])
	}
	if data["int"] != float64(42) { // JSON numbers are float64
		t.Errorf("Expected int=42, got: %v", data["int"])
	}
	if data["bool"] != true {
		t.Errorf("Expected bool=true, got: %v", data["bool"])
	}
	if data["pi"] != 3.5 {
		t.Errorf("Expected pi=3.5, got: %v", data["pi"])
	}
	ctx, ok := data["ctx"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested object for ctx, got: %v", data["ctx"])
	}
	if ctx["user"] != "alice" {
		t.Errorf("Expected ctx.user='alice', got: %v", ctx["user"])
	}
}

func TestJSONFormatter_Escaping(t *testing.T) {
	f := NewJSONFormatter(Config{})

	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "he said \"hi\"\nthen\tleft \x01",
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if data["message"] != "he said \"hi\"\nthen\tleft \x01" {
		t.Errorf("Escaping round-trip failed, got: %q", data["message"])
	}
}

func TestCSVFormatter(t *testing.T) {
	f := NewCSVFormatter(Config{})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.ErrorLevel,
		Layer:   "AUDIT",
		Message: `failed, reason: "timeout"`,
		Fields: []core.Field{
			{Key: "attempt", Type: core.IntType, Int64: 2},
			{Key: "host", Type: core.StringType, Str: "db-1"},
		},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2026-02-18T13:00:00Z,ERROR,AUDIT,\"failed, reason: \"\"timeout\"\"\",attempt=2 host=db-1\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}
}

func TestSyslogFormatter_SeverityPrefix(t *testing.T) {
	f := NewSyslogFormatter(Config{Hostname: "myhost"})

	tests := []struct {
		level core.Level
		want  string
	}{
		{core.DebugLevel, "<7>"},
		{core.InfoLevel, "<6>"},
		{core.WarningLevel, "<4>"},
		{core.ErrorLevel, "<3>"},
		{core.CriticalLevel, "<2>"},
	}

	for _, tt := range tests {
		r := &core.Record{
			Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
			Level:   tt.level,
			Layer:   "APP",
			Message: "hello",
		}
		result, err := f.Format(r)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.HasPrefix(string(result), tt.want) {
			t.Errorf("Format(%v) = %q, want prefix %q", tt.level, result, tt.want)
		}
	}
}

func TestSyslogFormatter_Line(t *testing.T) {
	f := NewSyslogFormatter(Config{Hostname: "myhost"})

	r := &core.Record{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Layer:   "API",
		Message: "request done",
		Fields:  []core.Field{{Key: "ms", Type: core.IntType, Int64: 12}},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "<6>2026-02-18T13:00:00Z myhost API: request done ms=12\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}

	r.Layer = ""
	result, _ = f.Format(r)
	if !strings.Contains(string(result), " myhost -: ") {
		t.Errorf("Expected '-' placeholder for empty layer, got: %q", result)
	}
}

func TestGELFFormatter(t *testing.T) {
	f := NewGELFFormatter(Config{Hostname: "myhost"})

	ts := time.Date(2026, 2, 18, 13, 0, 0, 123_000_000, time.UTC)
	r := &core.Record{
		Time:    ts,
		Level:   core.CriticalLevel,
		Layer:   "CORE",
		Message: "disk full",
		Fields: []core.Field{
			{Key: "free_mb", Type: core.IntType, Int64: 0},
			{Key: "id", Type: core.StringType, Str: "abc"},
		},
	}

	result, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if data["version"] != "1.1" {
		t.Errorf("Expected version '1.1', got: %v", data["version"])
	}
	if data["host"] != "myhost" {
		t.Errorf("Expected host 'myhost', got: %v", data["host"])
	}
	if data["short_message"] != "disk full" {
		t.Errorf("Expected short_message 'disk full', got: %v", data["short_message"])
	}
	if data["level"] != float64(2) {
		t.Errorf("Expected level 2, got: %v", data["level"])
	}
	wantTS := float64(ts.Unix()) + 0.123
	if got := data["timestamp"].(float64); math.Abs(got-wantTS) > 0.0005 {
		t.Errorf("Expected timestamp %v, got: %v", wantTS, got)
	}
	if data["_layer"] != "CORE" {
		t.Errorf("Expected _layer 'CORE', got: %v", data["_layer"])
	}
	if data["_free_mb"] != float64(0) {
		t.Errorf("Expected _free_mb 0, got: %v", data["_free_mb"])
	}
	if data["_id_"] != "abc" {
		t.Errorf("Expected reserved 'id' key remapped to _id_, got: %v", data)
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format config.Format
		want   string
	}{
		{config.FormatText, "*formatter.TextFormatter"},
		{config.FormatJSON, "*formatter.JSONFormatter"},
		{config.FormatCSV, "*formatter.CSVFormatter"},
		{config.FormatSyslog, "*formatter.SyslogFormatter"},
		{config.FormatGELF, "*formatter.GELFFormatter"},
		{config.Format("bogus"), "*formatter.TextFormatter"},
	}

	for _, tt := range tests {
		f := ForFormat(tt.format, Config{})
		if got := fmt.Sprintf("%T", f); got != tt.want {
			t.Errorf("ForFormat(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func BenchmarkTextFormatter(b *testing.B) {
	f := NewTextFormatter(Config{})
	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(r)
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter(Config{})
	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(r)
	}
}

func BenchmarkGELFFormatter(b *testing.B) {
	f := NewGELFFormatter(Config{Hostname: "bench"})
	r := &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(r)
	}
}
