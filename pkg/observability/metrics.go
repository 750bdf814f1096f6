// Package observability exposes Prometheus metrics for the sync engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Remote call outcome labels.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Collector holds the Prometheus metrics published by the engine. Each
// Collector owns its own registry so tests can create them freely.
type Collector struct {
	registry *prometheus.Registry

	// Remote store traffic
	RemoteCalls *prometheus.CounterVec

	// Write-back scheduler
	WritesCoalesced prometheus.Counter
	Flushes         prometheus.Counter

	// History
	UndoTotal    prometheus.Counter
	RedoTotal    prometheus.Counter
	HistoryDepth prometheus.Gauge

	// Pending entities
	PendingNodes prometheus.Gauge
}

// NewCollector creates a Collector with all metrics registered under the
// given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RemoteCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_calls_total",
				Help:      "Remote store calls by entity, operation and outcome",
			},
			[]string{"entity", "op", "outcome"},
		),
		WritesCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_coalesced_total",
			Help:      "Scheduled writes replaced by a newer write before dispatch",
		}),
		Flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Explicit flushes of the write-back scheduler",
		}),
		UndoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_total",
			Help:      "Undo operations that restored a snapshot",
		}),
		RedoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redo_total",
			Help:      "Redo operations that restored a snapshot",
		}),
		HistoryDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_depth",
			Help:      "Snapshots currently retained on the undo stack",
		}),
		PendingNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_nodes",
			Help:      "Locally created nodes not yet accepted by the remote store",
		}),
	}

	registry.MustRegister(
		c.RemoteCalls,
		c.WritesCoalesced,
		c.Flushes,
		c.UndoTotal,
		c.RedoTotal,
		c.HistoryDepth,
		c.PendingNodes,
	)
	return c
}

// Registry returns the registry backing this collector, for exposition.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRemoteCall records one remote store call result.
func (c *Collector) ObserveRemoteCall(entity, op string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	c.RemoteCalls.WithLabelValues(entity, op, outcome).Inc()
}
