package formatter_test

import (
	"fmt"
	"time"

	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{})

	r := &core.Record{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Layer:   "APP",
		Message: "hello world",
	}

	out, _ := f.Format(r)
	fmt.Print(string(out))
	// Output:
	// 2026-01-15T12:00:00Z [INFO] [APP] hello world
}

func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{})

	r := &core.Record{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Layer:   "API",
		Message: "request handled",
		Fields: []core.Field{
			{Key: "status", Int64: 200, Type: core.Int64Type},
		},
	}

	out, _ := f.Format(r)
	fmt.Print(string(out))
	// Output:
	// {"timestamp":"2026-01-15T12:00:00Z","level":"INFO","layer":"API","message":"request handled","status":200}
}

func ExampleNewSyslogFormatter() {
	f := formatter.NewSyslogFormatter(formatter.Config{Hostname: "web-1"})

	r := &core.Record{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.WarningLevel,
		Layer:   "API",
		Message: "slow request",
	}

	out, _ := f.Format(r)
	fmt.Print(string(out))
	// Output:
	// <4>2026-01-15T12:00:00Z web-1 API: slow request
}
