package handler

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/formatter"
)

// benchDestination runs config validation so parsed rotation settings
// are filled in, as the factory expects.
func benchDestination(b *testing.B, d config.Destination) config.Destination {
	b.Helper()
	cfg := &config.Config{
		Layers: map[string]config.Layer{
			"B": {Destinations: []config.Destination{d}},
		},
	}
	if err := cfg.Validate(); err != nil {
		b.Fatal(err)
	}
	return cfg.Layers["B"].Destinations[0]
}

func benchRecord() *core.Record {
	return &core.Record{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "benchmark record",
		Fields: []core.Field{
			{Key: "key", Type: core.StringType, Str: "value"},
			{Key: "seq", Type: core.IntType, Int64: 7},
		},
	}
}

// BenchmarkConsoleHandle measures a single console write, lock
// included.
func BenchmarkConsoleHandle(b *testing.B) {
	var mu sync.Mutex
	h := NewConsoleHandler(io.Discard, &mu, formatter.NewTextFormatter(formatter.Config{}))
	defer h.Close()

	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Handle(rec)
	}
}

// BenchmarkConsoleHandle_Parallel measures contention on the shared
// console lock.
func BenchmarkConsoleHandle_Parallel(b *testing.B) {
	var mu sync.Mutex
	h := NewConsoleHandler(io.Discard, &mu, formatter.NewTextFormatter(formatter.Config{}))
	defer h.Close()

	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h.Handle(rec)
		}
	})
}

// BenchmarkFileHandle compares per-record flushing with buffered
// writes.
func BenchmarkFileHandle(b *testing.B) {
	modes := []struct {
		name      string
		autoFlush bool
	}{
		{"AutoFlush", true},
		{"Buffered", false},
	}

	for _, tt := range modes {
		b.Run(tt.name, func(b *testing.B) {
			f := NewFactory(Options{AutoFlush: tt.autoFlush})
			defer f.Close()

			d := benchDestination(b, config.Destination{
				Type:    config.File,
				Path:    filepath.Join(b.TempDir(), "bench.log"),
				MaxSize: "1GB",
			})
			h, err := f.Build(d)
			if err != nil {
				b.Fatal(err)
			}
			defer h.Close()

			rec := benchRecord()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				h.Handle(rec)
			}
		})
	}
}

// BenchmarkFileRotation keeps the size cap small so the shift-and-
// truncate cycle runs throughout the measurement.
func BenchmarkFileRotation(b *testing.B) {
	f := NewFactory(Options{AutoFlush: true})
	defer f.Close()

	d := benchDestination(b, config.Destination{
		Type:        config.File,
		Path:        filepath.Join(b.TempDir(), "rotate.log"),
		MaxSize:     "4KB",
		BackupCount: 2,
	})
	h, err := f.Build(d)
	if err != nil {
		b.Fatal(err)
	}
	defer h.Close()

	rec := benchRecord()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Handle(rec)
	}
}

// BenchmarkFactoryBuild measures handler construction, including the
// per-path writer cache hit for files.
func BenchmarkFactoryBuild(b *testing.B) {
	b.Run("Console", func(b *testing.B) {
		f := NewFactory(Options{ConsoleWriter: io.Discard})
		defer f.Close()
		d := benchDestination(b, config.Destination{Type: config.Console})

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := f.Build(d); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("FileCachedPath", func(b *testing.B) {
		f := NewFactory(Options{})
		defer f.Close()
		d := benchDestination(b, config.Destination{
			Type:    config.File,
			Path:    filepath.Join(b.TempDir(), "cached.log"),
			MaxSize: "1GB",
		})
		if _, err := f.Build(d); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := f.Build(d); err != nil {
				b.Fatal(err)
			}
		}
	})
}
