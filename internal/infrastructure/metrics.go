package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for the dashboard server
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DatasetRows     *prometheus.GaugeVec
	DatasetLoads    *prometheus.CounterVec
}

// NewMetrics creates a metrics set on a fresh registry.
// A dedicated registry keeps tests isolated from the default global one.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_http_requests_total",
			Help: "Total number of HTTP requests processed",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insight_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "insight_dataset_rows",
			Help: "Number of rows currently loaded per dataset",
		}, []string{"dataset"}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_dataset_loads_total",
			Help: "Number of dataset load operations",
		}, []string{"dataset", "result"}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.DatasetRows,
		m.DatasetLoads,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
