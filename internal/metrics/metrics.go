// Package metrics exposes Prometheus instruments on a registry owned by the
// server, so tests can build many servers in one process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	EntityMutations     *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
	DashboardDuration   prometheus.Histogram
	RateLimited         prometheus.Counter
	SuspiciousRequests  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route", "status"},
		),

		EntityMutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entity_mutations_total",
				Help: "Successful create, update and delete operations per entity",
			},
			[]string{"entity", "action"},
		),

		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entity_events_published_total",
				Help: "Entity change events handed to the broker",
			},
			[]string{"status"}, // status: success, failed
		),

		DashboardDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_compute_duration_seconds",
			Help:    "Time to load a snapshot and compute dashboard views",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),

		SuspiciousRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "http_suspicious_requests_total",
			Help: "Requests flagged by the security detector",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (m *Metrics) RecordMutation(entity, action string) {
	if m == nil {
		return
	}
	m.EntityMutations.WithLabelValues(entity, action).Inc()
}

func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.EventsPublished.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveDashboard(duration time.Duration) {
	if m == nil {
		return
	}
	m.DashboardDuration.Observe(duration.Seconds())
}

func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

func (m *Metrics) IncSuspicious() {
	if m == nil {
		return
	}
	m.SuspiciousRequests.Inc()
}
