// Package handler builds and drives destination writers.
//
// A Handler writes already-filtered records to one destination.
// Handlers here are synchronous; queuing and backpressure live in the
// logger package, so a handler's job is just encode-and-write.
//
// The Factory turns a validated config.Destination into a handler and
// owns what handlers share: a single mutex for the console stream and
// one file writer per path. Two destinations pointing at the same
// file therefore go through one rotation critical section, and the
// first destination to claim a path fixes the file's rotation
// settings. Build failures (unwritable directory, bad path) come back
// as *CreationError; the router drops such destinations and keeps the
// siblings, so a broken destination can never fail a logging call.
//
// Built-in handlers:
//
//   - ConsoleHandler writes to a shared stream (default: stdout) and
//     never closes it.
//   - FileHandler writes through a buffered, size-tracked writer and
//     rotates base.log -> base.log.1 ... base.log.N, deleting backups
//     beyond backup_count. backup_count 0 truncates in place.
//
// File handlers implement Flusher; sync engines flush every record,
// batch consumers flush at batch boundaries. Files are closed by
// Factory.Close, not by individual handlers, because siblings may
// still hold them.
package handler
