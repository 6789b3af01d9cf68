package httpapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
)

// Metrics holds the Prometheus collectors for the lookup API
type Metrics struct {
	Registry *prometheus.Registry

	resolutions *prometheus.CounterVec
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited prometheus.Counter
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brandkit",
				Name:      "resolutions_total",
				Help:      "Name resolutions by registry kind and matching tier.",
			},
			[]string{"kind", "tier"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brandkit",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "brandkit",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "brandkit",
				Name:      "http_rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			},
		),
	}

	m.Registry.MustRegister(m.resolutions, m.requests, m.duration, m.rateLimited)
	return m
}

// RecordResolution counts one lookup outcome
func (m *Metrics) RecordResolution(res domain.Resolution) {
	m.resolutions.WithLabelValues(string(res.Kind), res.Tier.String()).Inc()
}

// RecordRequest counts one served request
func (m *Metrics) RecordRequest(method, route, status string, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
