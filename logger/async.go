package logger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/SavinRazvan/hydra-logger/config"
	"github.com/SavinRazvan/hydra-logger/core"
	"github.com/SavinRazvan/hydra-logger/handler"
	"github.com/SavinRazvan/hydra-logger/monitor"
	"github.com/SavinRazvan/hydra-logger/redact"
)

// ErrQueueFull is returned by Log under the Reject policy when the
// queue has no room. No other policy surfaces queue pressure as an
// error.
var ErrQueueFull = errors.New("log queue is full")

// OverflowPolicy selects what happens to a record when the async
// queue is full.
type OverflowPolicy int

const (
	// Block waits for queue space, bounded by BlockTimeout when set.
	Block OverflowPolicy = iota
	// DropNewest discards the incoming record.
	DropNewest
	// DropOldest evicts the oldest queued record to admit the new one.
	DropOldest
	// Reject discards the incoming record and returns ErrQueueFull.
	Reject
)

// String returns the policy name.
func (p OverflowPolicy) String() string {
	switch p {
	case Block:
		return "block"
	case DropNewest:
		return "drop_newest"
	case DropOldest:
		return "drop_oldest"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

const (
	defaultQueueSize       = 1000
	defaultBatchSize       = 100
	defaultBatchTimeout    = 100 * time.Millisecond
	defaultShutdownTimeout = 5 * time.Second
)

// AsyncOptions configures an AsyncLogger.
type AsyncOptions struct {
	Options

	// QueueSize bounds each worker's queue (default 1000).
	QueueSize int

	// BatchSize flushes a worker's pending batch once it holds this
	// many records (default 100).
	BatchSize int

	// BatchTimeout flushes a partial batch this long after its first
	// record arrived (default 100ms).
	BatchTimeout time.Duration

	// Policy is the backpressure behavior for a full queue.
	Policy OverflowPolicy

	// BlockTimeout bounds the wait under the Block policy. Zero waits
	// until space frees.
	BlockTimeout time.Duration

	// ShutdownTimeout bounds the drain on Close (default 5s).
	ShutdownTimeout time.Duration

	// Workers sets the consumer count (default 1). With more than one,
	// layers are sharded across workers by name hash: flush order
	// holds within a layer but not across layers.
	Workers int
}

func (o AsyncOptions) normalize() AsyncOptions {
	o.Options = o.Options.normalize()
	if o.QueueSize <= 0 {
		o.QueueSize = defaultQueueSize
	}
	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}
	if o.BatchTimeout <= 0 {
		o.BatchTimeout = defaultBatchTimeout
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// AsyncLogger queues records and writes them from consumer goroutines
// in batches. An emit only ever pauses when the queue is full under
// the Block policy; the consumers are the sole writers to the
// handlers, so within one worker flush order equals enqueue order.
type AsyncLogger struct {
	*router
	factory *handler.Factory
	red     *redact.Redactor
	limiter *rate.Limiter
	mon     *monitor.Monitor
	errh    func(error)
	opts    AsyncOptions

	// mu guards closed against in-flight queue sends.
	mu     sync.RWMutex
	closed bool

	queues []chan *core.Record
	stopc  chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// NewAsync builds an asynchronous engine and starts its consumers.
// Validation is the only failure mode.
func NewAsync(cfg *config.Config, opts AsyncOptions) (*AsyncLogger, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if !cfg.Validated() {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	opts = opts.normalize()
	f := handler.NewFactory(handler.Options{
		ConsoleWriter: opts.ConsoleWriter,
		AutoFlush:     false,
		Hostname:      opts.Hostname,
	})
	l := &AsyncLogger{
		router:  newRouter(cfg, f, opts.Lazy, opts.ErrorHandler),
		factory: f,
		red:     opts.Redactor,
		limiter: opts.MaxLogRate,
		mon:     opts.Monitor,
		errh:    opts.ErrorHandler,
		opts:    opts,
		queues:  make([]chan *core.Record, opts.Workers),
		stopc:   make(chan struct{}),
	}
	for i := range l.queues {
		l.queues[i] = make(chan *core.Record, opts.QueueSize)
	}
	l.wg.Add(len(l.queues))
	for _, q := range l.queues {
		go l.consume(q)
	}
	return l, nil
}

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// queueFor shards a layer onto a worker queue by FNV-1a hash of its
// name. With one worker every layer shares one queue.
func (l *AsyncLogger) queueFor(layer string) chan *core.Record {
	if len(l.queues) == 1 {
		return l.queues[0]
	}
	h := uint32(fnvOffset32)
	for i := 0; i < len(layer); i++ {
		h ^= uint32(layer[i])
		h *= fnvPrime32
	}
	return l.queues[h%uint32(len(l.queues))]
}

// emit redacts eagerly and enqueues; everything destination-facing
// happens later on a consumer.
func (l *AsyncLogger) emit(level core.Level, layer, msg string, fields []core.Field) error {
	if l.limiter != nil && !l.limiter.Allow() {
		l.mon.RecordDrop(monitor.DropRateLimited)
		return nil
	}
	routes := l.resolve(layer)
	if !passes(routes, level) {
		return nil
	}
	return l.enqueue(newRecord(level, layer, msg, fields, l.red))
}

// enqueue applies the backpressure policy. The read lock keeps Close
// from closing a queue while a send is in flight.
func (l *AsyncLogger) enqueue(rec *core.Record) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		core.PutRecord(rec)
		l.mon.RecordDrop(monitor.DropShutdown)
		return nil
	}
	q := l.queueFor(rec.Layer)

	switch l.opts.Policy {
	case DropNewest:
		select {
		case q <- rec:
		default:
			core.PutRecord(rec)
			l.mon.RecordDrop(monitor.DropNewest)
		}

	case DropOldest:
		for {
			select {
			case q <- rec:
				return nil
			default:
			}
			select {
			case old := <-q:
				core.PutRecord(old)
				l.mon.RecordDrop(monitor.DropOldest)
			default:
			}
		}

	case Reject:
		select {
		case q <- rec:
		default:
			core.PutRecord(rec)
			l.mon.RecordDrop(monitor.DropNewest)
			return ErrQueueFull
		}

	default: // Block
		if l.opts.BlockTimeout <= 0 {
			q <- rec
			return nil
		}
		t := time.NewTimer(l.opts.BlockTimeout)
		defer t.Stop()
		select {
		case q <- rec:
		case <-t.C:
			core.PutRecord(rec)
			l.mon.RecordDrop(monitor.DropBlocked)
		}
	}
	return nil
}

// consume drains one queue, batching records until BatchSize is
// reached or BatchTimeout has passed since the first record of the
// pending batch, whichever comes first.
func (l *AsyncLogger) consume(q chan *core.Record) {
	defer l.wg.Done()

	batch := make([]*core.Record, 0, l.opts.BatchSize)
	var timer *time.Timer
	var timeoutC <-chan time.Time

	flush := func() {
		l.flushBatch(batch)
		batch = batch[:0]
		if timer != nil {
			timer.Stop()
			timer = nil
			timeoutC = nil
		}
	}
	// A consumer torn down early still flushes what it holds.
	defer func() {
		if len(batch) > 0 {
			l.flushBatch(batch)
		}
	}()

	for {
		select {
		case rec, ok := <-q:
			if !ok {
				if len(batch) > 0 {
					flush()
				}
				return
			}
			if len(batch) == 0 {
				timer = time.NewTimer(l.opts.BatchTimeout)
				timeoutC = timer.C
			}
			batch = append(batch, rec)
			if len(batch) >= l.opts.BatchSize {
				flush()
			}

		case <-timeoutC:
			timer = nil
			timeoutC = nil
			if len(batch) > 0 {
				flush()
			}

		case <-l.stopc:
			if len(batch) > 0 {
				flush()
			}
			return
		}
	}
}

// flushBatch writes a batch in enqueue order, then flushes every file
// handler it touched.
func (l *AsyncLogger) flushBatch(batch []*core.Record) {
	var touched map[handler.Flusher]struct{}
	for _, rec := range batch {
		for _, rt := range l.resolve(rec.Layer) {
			if rec.Level < rt.level {
				continue
			}
			if err := rt.h.Handle(rec); err != nil {
				l.mon.RecordWriteError()
				l.errh(err)
				continue
			}
			if fl, ok := rt.h.(handler.Flusher); ok {
				if touched == nil {
					touched = make(map[handler.Flusher]struct{})
				}
				touched[fl] = struct{}{}
			}
		}
		l.mon.RecordProcessed(rec.Layer, time.Since(rec.Time))
		core.PutRecord(rec)
	}
	for fl := range touched {
		if err := fl.Flush(); err != nil {
			l.mon.RecordWriteError()
			l.errh(err)
		}
	}
}

// Debug logs a debug message through the named layer.
func (l *AsyncLogger) Debug(layer, msg string, fields ...core.Field) {
	l.emit(core.DebugLevel, layer, msg, fields)
}

// Info logs an info message through the named layer.
func (l *AsyncLogger) Info(layer, msg string, fields ...core.Field) {
	l.emit(core.InfoLevel, layer, msg, fields)
}

// Warning logs a warning message through the named layer.
func (l *AsyncLogger) Warning(layer, msg string, fields ...core.Field) {
	l.emit(core.WarningLevel, layer, msg, fields)
}

// Error logs an error message through the named layer.
func (l *AsyncLogger) Error(layer, msg string, fields ...core.Field) {
	l.emit(core.ErrorLevel, layer, msg, fields)
}

// Critical logs a critical message through the named layer.
func (l *AsyncLogger) Critical(layer, msg string, fields ...core.Field) {
	l.emit(core.CriticalLevel, layer, msg, fields)
}

// Log logs at an arbitrary level. Under the Reject policy it returns
// ErrQueueFull when the queue has no room; every other outcome is
// absorbed and counted.
func (l *AsyncLogger) Log(level core.Level, layer, msg string, fields ...core.Field) error {
	return l.emit(level, layer, msg, fields)
}

// Debugf logs a formatted debug message through the named layer.
func (l *AsyncLogger) Debugf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.DebugLevel) {
		return
	}
	l.emit(core.DebugLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message through the named layer.
func (l *AsyncLogger) Infof(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.InfoLevel) {
		return
	}
	l.emit(core.InfoLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Warningf logs a formatted warning message through the named layer.
func (l *AsyncLogger) Warningf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.WarningLevel) {
		return
	}
	l.emit(core.WarningLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message through the named layer.
func (l *AsyncLogger) Errorf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.ErrorLevel) {
		return
	}
	l.emit(core.ErrorLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a formatted critical message through the named layer.
func (l *AsyncLogger) Criticalf(layer, format string, args ...interface{}) {
	if !passes(l.resolve(layer), core.CriticalLevel) {
		return
	}
	l.emit(core.CriticalLevel, layer, fmt.Sprintf(format, args...), nil)
}

// Stats returns a snapshot of the engine's counters.
func (l *AsyncLogger) Stats() monitor.Snapshot {
	return l.mon.Snapshot()
}

// Close stops intake, drains the queues and flushes the final partial
// batches, bounded by ShutdownTimeout. Records still queued when the
// timeout fires are counted as lost and reported through the error
// handler, never silently discarded. Close is idempotent.
func (l *AsyncLogger) Close() error {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		for _, q := range l.queues {
			close(q)
		}
		l.mu.Unlock()

		done := make(chan struct{})
		go func() {
			l.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(l.opts.ShutdownTimeout):
			// Tell the consumers to stop and reclaim whatever is still
			// queued. The channels are closed, so these receives race
			// the consumers but never block; each record lands exactly
			// once, either flushed by a consumer or counted here. A
			// consumer wedged inside a destination write keeps running
			// past this point and its record surfaces as a write error
			// instead.
			close(l.stopc)
			var lost uint64
			for _, q := range l.queues {
				for rec := range q {
					core.PutRecord(rec)
					lost++
				}
			}
			if lost > 0 {
				l.mon.RecordLost(monitor.DropShutdown, lost)
				l.errh(fmt.Errorf("shutdown timeout: %d queued records lost", lost))
			}
		}
		l.closeErr = l.factory.Close()
	})
	return l.closeErr
}
