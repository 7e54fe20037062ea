package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DropReason classifies why a record never reached its destinations.
type DropReason int

const (
	// DropNewest means the arriving record was rejected because the
	// queue was full.
	DropNewest DropReason = iota
	// DropOldest means the oldest queued record was evicted to make
	// room for a newer one.
	DropOldest
	// DropBlocked means the caller's block timeout expired while the
	// queue stayed full.
	DropBlocked
	// DropRateLimited means the emit rate gate rejected the record.
	DropRateLimited
	// DropShutdown means the record was still queued when the engine
	// closed and the drain deadline passed.
	DropShutdown
)

// String returns the reason name used in snapshots and metric labels.
func (r DropReason) String() string {
	switch r {
	case DropNewest:
		return "newest"
	case DropOldest:
		return "oldest"
	case DropBlocked:
		return "blocked"
	case DropRateLimited:
		return "rate_limited"
	case DropShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// dropReasons lists every reason for snapshot and metrics iteration.
var dropReasons = []DropReason{DropNewest, DropOldest, DropBlocked, DropRateLimited, DropShutdown}

// ewmaAlpha weights the newest latency sample in the rolling average.
const ewmaAlpha = 0.1

type layerStats struct {
	count      uint64
	avgLatency float64 // seconds, exponentially weighted
}

// Monitor tracks one engine's throughput, losses and per-layer
// latency. Engines call the Record methods on their emit paths;
// Snapshot gives a consistent read. A nil *Monitor is valid and
// records nothing, so engines can carry one unconditionally.
type Monitor struct {
	mu         sync.Mutex
	instanceID string
	start      time.Time

	processed   uint64
	writeErrors uint64
	dropped     map[DropReason]uint64
	layers      map[string]*layerStats
}

// New creates a Monitor stamped with a unique instance ID.
func New() *Monitor {
	return &Monitor{
		instanceID: uuid.NewString(),
		start:      time.Now(),
		dropped:    make(map[DropReason]uint64),
		layers:     make(map[string]*layerStats),
	}
}

// InstanceID returns the unique ID of this monitor's engine.
func (m *Monitor) InstanceID() string {
	if m == nil {
		return ""
	}
	return m.instanceID
}

// RecordProcessed counts one record fully dispatched for a layer and
// folds its emit latency into the layer's rolling average.
func (m *Monitor) RecordProcessed(layer string, latency time.Duration) {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	ls, ok := m.layers[layer]
	if !ok {
		ls = &layerStats{}
		m.layers[layer] = ls
	}
	sample := latency.Seconds()
	if ls.count == 0 {
		ls.avgLatency = sample
	} else {
		ls.avgLatency = (1-ewmaAlpha)*ls.avgLatency + ewmaAlpha*sample
	}
	ls.count++
}

// RecordDrop counts one lost record.
func (m *Monitor) RecordDrop(reason DropReason) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.dropped[reason]++
	m.mu.Unlock()
}

// RecordLost counts n records lost at once, as when a close deadline
// abandons a partially drained queue.
func (m *Monitor) RecordLost(reason DropReason, n uint64) {
	if m == nil || n == 0 {
		return
	}
	m.mu.Lock()
	m.dropped[reason] += n
	m.mu.Unlock()
}

// RecordWriteError counts a destination write failure. The record may
// still have reached sibling destinations.
func (m *Monitor) RecordWriteError() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.writeErrors++
	m.mu.Unlock()
}

// LayerSnapshot is one layer's activity in a Snapshot.
type LayerSnapshot struct {
	Count      uint64
	AvgLatency time.Duration
}

// Snapshot is a consistent copy of the monitor's state.
type Snapshot struct {
	InstanceID        string
	Uptime            time.Duration
	Processed         uint64
	WriteErrors       uint64
	Dropped           map[DropReason]uint64
	TotalDropped      uint64
	MessagesPerSecond float64
	Layers            map[string]LayerSnapshot
}

// Snapshot returns a copy of the current statistics. The rate is
// derived from processed count and uptime at read time.
func (m *Monitor) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{Dropped: map[DropReason]uint64{}, Layers: map[string]LayerSnapshot{}}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		InstanceID:  m.instanceID,
		Uptime:      time.Since(m.start),
		Processed:   m.processed,
		WriteErrors: m.writeErrors,
		Dropped:     make(map[DropReason]uint64, len(dropReasons)),
		Layers:      make(map[string]LayerSnapshot, len(m.layers)),
	}

	for _, reason := range dropReasons {
		n := m.dropped[reason]
		snap.Dropped[reason] = n
		snap.TotalDropped += n
	}

	for name, ls := range m.layers {
		snap.Layers[name] = LayerSnapshot{
			Count:      ls.count,
			AvgLatency: time.Duration(ls.avgLatency * float64(time.Second)),
		}
	}

	if secs := snap.Uptime.Seconds(); secs > 0 {
		snap.MessagesPerSecond = float64(snap.Processed) / secs
	}

	return snap
}
