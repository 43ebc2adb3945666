// Package metrics exposes Prometheus collectors for the invoice service.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invoicer"

// Metrics groups the service collectors.
type Metrics struct {
	rpcRequests        *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	persistenceFailure *prometheus.CounterVec
	exports            *prometheus.CounterVec
	exportDuration     *prometheus.HistogramVec
	storedInvoices     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		persistenceFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_write_failures_total",
			Help:      "Failed writes to the key-value store by key.",
		}, []string{"key"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export requests by format and outcome.",
		}, []string{"format", "outcome"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time spent rendering exports.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"format"}),
		storedInvoices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_invoices",
			Help:      "Number of invoices in the saved collection.",
		}),
	}

	reg.MustRegister(
		m.rpcRequests,
		m.rpcDuration,
		m.persistenceFailure,
		m.exports,
		m.exportDuration,
		m.storedInvoices,
	)
	return m
}

// RPC records one finished call.
func (m *Metrics) RPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// PersistenceFailure counts a failed write of key.
func (m *Metrics) PersistenceFailure(key string) {
	if m == nil {
		return
	}
	m.persistenceFailure.WithLabelValues(key).Inc()
}

// Export records an export attempt.
func (m *Metrics) Export(format, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, outcome).Inc()
	m.exportDuration.WithLabelValues(format).Observe(d.Seconds())
}

// StoredInvoices sets the size of the saved collection.
func (m *Metrics) StoredInvoices(n int) {
	if m == nil {
		return
	}
	m.storedInvoices.Set(float64(n))
}
