// Package monitoring provides Prometheus instrumentation for the
// analytics engine and its HTTP boundary.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AnalyticsMetrics records per-collector timings and failures. It
// implements the engine's Observer interface.
type AnalyticsMetrics struct {
	registry *prometheus.Registry

	collectorDuration *prometheus.HistogramVec
	collectorFailures *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewAnalyticsMetrics creates and registers the metric set.
func NewAnalyticsMetrics() *AnalyticsMetrics {
	registry := prometheus.NewRegistry()

	m := &AnalyticsMetrics{
		registry: registry,
		collectorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pawhaven",
			Subsystem: "analytics",
			Name:      "collector_duration_seconds",
			Help:      "Time spent running one metrics collector.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collector"}),
		collectorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pawhaven",
			Subsystem: "analytics",
			Name:      "collector_failures_total",
			Help:      "Collector runs that returned an error.",
		}, []string{"collector"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pawhaven",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	registry.MustRegister(m.collectorDuration, m.collectorFailures, m.requestDuration)
	return m
}

// ObserveCollector records one collector run.
func (m *AnalyticsMetrics) ObserveCollector(name string, duration time.Duration, err error) {
	m.collectorDuration.WithLabelValues(name).Observe(duration.Seconds())
	if err != nil {
		m.collectorFailures.WithLabelValues(name).Inc()
	}
}

// ObserveRequest records one HTTP request.
func (m *AnalyticsMetrics) ObserveRequest(route, status string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route, status).Observe(duration.Seconds())
}

// Handler exposes the registry for scraping.
func (m *AnalyticsMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
