package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	registry         *prometheus.Registry
	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	resolverTotal    *prometheus.CounterVec
	resolverDuration *prometheus.HistogramVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dlf",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dlf",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		resolverTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dlf",
			Subsystem: "graphql",
			Name:      "resolver_calls_total",
			Help:      "Count of GraphQL resolver invocations by outcome",
		}, []string{"field", "outcome"}),
		resolverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dlf",
			Subsystem: "graphql",
			Name:      "resolver_duration_seconds",
			Help:      "Latency distribution of GraphQL resolvers",
			Buckets:   histogramBuckets,
		}, []string{"field"}),
	}
	m.registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.resolverTotal,
		m.resolverDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordRequest observes one HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestDuration.With(labels).Observe(duration.Seconds())
}

// RecordResolver observes one resolver invocation. outcome is "ok" or an error code.
func (m *Metrics) RecordResolver(field, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolverTotal.With(prometheus.Labels{"field": field, "outcome": outcome}).Inc()
	m.resolverDuration.With(prometheus.Labels{"field": field}).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
