// Package promexporter exposes kvline client statistics as Prometheus metrics.
package promexporter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/pior/kvline"
)

// Source is what the collector reads from. *kvline.Client implements it.
type Source interface {
	Addr() string
	State() kvline.State
	Stats() kvline.ClientStats
	BreakerState() gobreaker.State
	LastUsed() time.Time
}

var _ Source = (*kvline.Client)(nil)

// Collector is a prometheus.Collector reading a client snapshot on every scrape.
type Collector struct {
	source Source

	operations   *prometheus.Desc
	hits         *prometheus.Desc
	errors       *prometheus.Desc
	connected    *prometheus.Desc
	circuitState *prometheus.Desc
	lastUsed     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for source. Register it on a registry:
//
//	registry.MustRegister(promexporter.NewCollector(client))
func NewCollector(source Source) *Collector {
	return &Collector{
		source: source,
		operations: prometheus.NewDesc(
			"kvline_operations_total",
			"Total number of successful operations.",
			[]string{"server", "op"}, nil,
		),
		hits: prometheus.NewDesc(
			"kvline_hits_total",
			"Operations that found the key.",
			[]string{"server", "op"}, nil,
		),
		errors: prometheus.NewDesc(
			"kvline_errors_total",
			"Total errors across all operations.",
			[]string{"server"}, nil,
		),
		connected: prometheus.NewDesc(
			"kvline_connected",
			"Whether the client connection is open (1) or not (0).",
			[]string{"server"}, nil,
		),
		circuitState: prometheus.NewDesc(
			"kvline_circuit_breaker_state",
			"Circuit breaker state (0=closed, 1=half-open, 2=open).",
			[]string{"server"}, nil,
		),
		lastUsed: prometheus.NewDesc(
			"kvline_last_used_timestamp_seconds",
			"Unix time of the last connect or completed request, 0 if never.",
			[]string{"server"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.operations
	ch <- c.hits
	ch <- c.errors
	ch <- c.connected
	ch <- c.circuitState
	ch <- c.lastUsed
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	server := c.source.Addr()
	stats := c.source.Stats()

	counter := func(desc *prometheus.Desc, value uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(value), labels...)
	}

	counter(c.operations, stats.Sets, server, "set")
	counter(c.operations, stats.Gets, server, "get")
	counter(c.operations, stats.Deletes, server, "delete")
	counter(c.operations, stats.Exists, server, "exists")

	counter(c.hits, stats.GetHits, server, "get")
	counter(c.hits, stats.DeleteHits, server, "delete")

	counter(c.errors, stats.Errors, server)

	connected := 0.0
	if c.source.State() == kvline.StateConnected {
		connected = 1
	}
	ch <- prometheus.MustNewConstMetric(c.connected, prometheus.GaugeValue, connected, server)

	ch <- prometheus.MustNewConstMetric(c.circuitState, prometheus.GaugeValue, float64(c.source.BreakerState()), server)

	lastUsed := 0.0
	if t := c.source.LastUsed(); !t.IsZero() {
		lastUsed = float64(t.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(c.lastUsed, prometheus.GaugeValue, lastUsed, server)
}
