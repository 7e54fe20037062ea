package handler

import (
	"github.com/SavinRazvan/hydra-logger/core"
)

// Handler writes encoded records to one destination.
type Handler interface {
	// Handle encodes and writes a single record.
	Handle(r *core.Record) error

	// Close flushes the handler. Underlying files and streams are
	// owned by the Factory that built the handler and stay open for
	// siblings sharing them.
	Close() error
}

// Flusher is an optional interface for handlers that buffer writes.
// Batch consumers call it at batch boundaries so a whole batch hits
// the destination as a unit.
type Flusher interface {
	Flush() error
}
