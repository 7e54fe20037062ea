package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Monitor's counters to Prometheus. Values are
// read from a Snapshot at scrape time, so the engine's emit path
// never touches a prometheus instrument.
//
// Register it with any registry:
//
//	registry.MustRegister(monitor.NewCollector(m))
type Collector struct {
	monitor *Monitor

	processed   *prometheus.Desc
	dropped     *prometheus.Desc
	writeErrors *prometheus.Desc
	layerCount  *prometheus.Desc
	layerLat    *prometheus.Desc
	uptime      *prometheus.Desc
}

// NewCollector creates a prometheus collector reading from m.
func NewCollector(m *Monitor) *Collector {
	constLabels := prometheus.Labels{"instance_id": m.InstanceID()}

	return &Collector{
		monitor: m,
		processed: prometheus.NewDesc(
			"hydra_log_records_processed_total",
			"Total number of records dispatched to all destinations",
			nil, constLabels,
		),
		dropped: prometheus.NewDesc(
			"hydra_log_records_dropped_total",
			"Total number of records lost, by reason",
			[]string{"reason"}, constLabels,
		),
		writeErrors: prometheus.NewDesc(
			"hydra_log_write_errors_total",
			"Total number of destination write failures",
			nil, constLabels,
		),
		layerCount: prometheus.NewDesc(
			"hydra_log_layer_records_total",
			"Records dispatched per layer",
			[]string{"layer"}, constLabels,
		),
		layerLat: prometheus.NewDesc(
			"hydra_log_layer_latency_seconds",
			"Rolling average emit latency per layer",
			[]string{"layer"}, constLabels,
		),
		uptime: prometheus.NewDesc(
			"hydra_log_uptime_seconds",
			"Seconds since the engine was created",
			nil, constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.dropped
	ch <- c.writeErrors
	ch <- c.layerCount
	ch <- c.layerLat
	ch <- c.uptime
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.monitor.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(snap.Processed))
	ch <- prometheus.MustNewConstMetric(c.writeErrors, prometheus.CounterValue, float64(snap.WriteErrors))
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, snap.Uptime.Seconds())

	for reason, n := range snap.Dropped {
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(n), reason.String())
	}
	for layer, ls := range snap.Layers {
		ch <- prometheus.MustNewConstMetric(c.layerCount, prometheus.CounterValue, float64(ls.Count), layer)
		ch <- prometheus.MustNewConstMetric(c.layerLat, prometheus.GaugeValue, ls.AvgLatency.Seconds(), layer)
	}
}
