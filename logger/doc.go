// Package logger is the public API of hydra-logger. Most users only
// need to import this package and config.
//
// Records are emitted through named layers. A layer routes to one or
// more destinations, each with its own effective level resolved
// destination > layer > config default. An unknown layer name aliases
// to the layer literally named "DEFAULT" when one is configured, and
// is otherwise accepted and dropped. Logging calls never fail because
// of a destination: only config validation errors are fatal, and only
// at construction time.
//
// Two engines share one pipeline. SyncLogger writes on the calling
// goroutine and is safe under concurrent use:
//
//	log, err := logger.New(cfg, logger.Options{})
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//	log.Info("APP", "ready", logger.Int("port", 8080))
//
// AsyncLogger queues records behind a bounded queue and writes them
// from consumer goroutines in batches. The backpressure policy for a
// full queue is explicit: Block, DropNewest, DropOldest or Reject,
// with every dropped record counted. Close drains the queue up to a
// shutdown timeout and reports anything it could not flush:
//
//	log, err := logger.NewAsync(cfg, logger.AsyncOptions{
//	    QueueSize: 5000,
//	    Policy:    logger.DropOldest,
//	})
//
// The package also initializes a default synchronous logger with one
// console DEFAULT layer, so simple programs can log without setup:
//
//	logger.Info("DEFAULT", "started")
//
// For interop, Slog returns a *slog.Logger and ZapCore returns a
// zapcore.Core, both dispatching through the engine's layers.
package logger
