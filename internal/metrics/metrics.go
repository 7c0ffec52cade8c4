package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthEvents      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Authentication and session lifecycle events.",
			},
			[]string{"event"},
		),
	}
	m.Registry.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.AuthEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Track counts an auth event. It implements the services EventTracker port.
func (m *Metrics) Track(_ context.Context, _ string, event string, _ map[string]any) {
	m.AuthEvents.WithLabelValues(event).Inc()
}
