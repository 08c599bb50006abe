// Package metricsexport mirrors the run's domain counters onto a
// Prometheus registry for scraping, separate from the emission-record
// stream the simulation itself produces (spec §6). This is an ambient
// observability surface, not part of the in-scope Metrics Aggregator.
package metricsexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"manetsim/core"
)

const namespace = "manetsim"

// Collector holds the Prometheus metrics mirrored from a run.
type Collector struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	EnergyUsed      prometheus.Gauge
	RoutingOverhead prometheus.Gauge
	SimSeconds      prometheus.Gauge

	// lastSent/lastReceived are the cumulative totals last mirrored, so
	// Observe can derive the forward-only delta a Counter requires from
	// the record's absolute running totals.
	lastSent, lastReceived uint64
}

// NewCollector creates a Collector and registers it against 'reg'. If
// reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "packets_sent_total",
			Help: "Total packets created by the traffic generator.",
		}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "packets_received_total",
			Help: "Total packets delivered to their destination.",
		}),
		EnergyUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "energy_used_joules",
			Help: "Cumulative energy used across all nodes, in joules.",
		}),
		RoutingOverhead: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "routing_overhead_total",
			Help: "Protocol-reported routing control overhead.",
		}),
		SimSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "sim_seconds",
			Help: "Current simulated time, in seconds.",
		}),
	}
	reg.MustRegister(c.PacketsSent, c.PacketsReceived, c.EnergyUsed, c.RoutingOverhead, c.SimSeconds)
	return c
}

// Observe mirrors one emission record's aggregate fields onto the
// registered metrics. rec carries cumulative totals, but Prometheus
// counters only move forward, so Observe adds the delta against the
// last-observed total rather than calling Set.
func (c *Collector) Observe(rec EmissionLike) {
	c.EnergyUsed.Set(rec.GetTotalEnergy())
	c.RoutingOverhead.Set(float64(rec.GetOverhead()))
	c.SimSeconds.Set(rec.GetAt())

	if sent := rec.GetSent(); sent > c.lastSent {
		c.PacketsSent.Add(float64(sent - c.lastSent))
		c.lastSent = sent
	}
	if received := rec.GetReceived(); received > c.lastReceived {
		c.PacketsReceived.Add(float64(received - c.lastReceived))
		c.lastReceived = received
	}
}

// EmissionLike is the subset of sim.EmissionRecord Observe needs,
// expressed as an interface so this package does not import sim; only
// cmd/manetsim depends on both.
type EmissionLike interface {
	GetAt() float64
	GetTotalEnergy() float64
	GetOverhead() uint64
	GetSent() uint64
	GetReceived() uint64
}

// Protocol is re-exported so callers building a Collector don't need an
// extra import just to name the protocol in a log line.
type Protocol = core.Protocol
