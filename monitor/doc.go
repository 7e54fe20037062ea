// Package monitor tracks engine health: processed and dropped record
// counts, destination write failures, and a rolling per-layer average
// of emit latency.
//
// A Monitor is fed by the engine that owns it and read via Snapshot.
// Drops are broken down by reason (queue-full on either end, block
// timeout, rate limiting, shutdown loss) so backpressure behavior is
// observable rather than silent. A nil Monitor records nothing, which
// lets engines skip the nil checks on their emit paths.
//
// NewCollector adapts a Monitor to prometheus.Collector. Metrics are
// materialized from a Snapshot at scrape time; nothing on the logging
// hot path touches a prometheus instrument.
package monitor
