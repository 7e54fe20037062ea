package logger_test

import (
	"io"
	"time"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/logger"
)

// Use the package-level default logger for quick, no-setup logging.
func Example() {
	logger.Info("APP", "Application started")
	logger.Info("AUTH", "User login",
		logger.String("username", "alice"),
		logger.Int("user_id", 123),
	)
}

// Build a logger from an explicit layer configuration. Each layer
// routes to its own destinations with its own threshold.
func ExampleNew() {
	cfg := &config.Config{
		DefaultLevel: "INFO",
		Layers: map[string]config.Layer{
			"API": {
				Destinations: []config.Destination{
					{Type: config.Console},
					{Type: config.File, Path: "logs/api.log", Format: config.FormatJSON, Level: "ERROR"},
				},
			},
			config.DefaultLayerName: {
				Destinations: []config.Destination{{Type: config.Console}},
			},
		},
	}

	log, err := logger.New(cfg, logger.Options{ConsoleWriter: io.Discard})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	log.Info("API", "request served", logger.Int("status", 200))
	log.Info("BILLING", "falls through to the DEFAULT layer")
}

// Route records through a bounded queue with batching consumers. The
// overflow policy decides what happens when producers outrun the
// queue.
func ExampleNewAsync() {
	cfg := &config.Config{
		Layers: map[string]config.Layer{
			"EVENTS": {
				Destinations: []config.Destination{{Type: config.Console}},
			},
		},
	}

	log, err := logger.NewAsync(cfg, logger.AsyncOptions{
		Options:      logger.Options{ConsoleWriter: io.Discard},
		QueueSize:    5000,
		BatchSize:    50,
		BatchTimeout: 100 * time.Millisecond,
		Policy:       logger.DropOldest,
	})
	if err != nil {
		panic(err)
	}

	log.Info("EVENTS", "order placed", logger.String("order_id", "ord-881"))

	// Close drains the queue before releasing the destinations.
	log.Close()
}

// Feed log/slog through a layer's pipeline.
func ExampleSyncLogger_Slog() {
	log, err := logger.New(&config.Config{
		Layers: map[string]config.Layer{
			"API": {Destinations: []config.Destination{{Type: config.Console}}},
		},
	}, logger.Options{ConsoleWriter: io.Discard})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	sl := log.Slog("API").With("request_id", "req-12345")
	sl.Info("Processing request", "path", "/api/users")
	sl.Info("Request completed", "status", 200)
}
