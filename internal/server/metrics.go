package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments for the HTTP surface. Each
// Metrics value owns its registry so tests can build as many as they like
// without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	jobsTotal       *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

// NewMetrics builds a metrics set with its own registry, including the Go
// runtime collector.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "asynclab_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asynclab_requests_total",
			Help: "Total HTTP requests by path and method.",
		}, []string{"path", "method"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asynclab_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		jobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asynclab_background_jobs_total",
			Help: "Background jobs by name and outcome.",
		}, []string{"name", "outcome"}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asynclab_background_job_duration_seconds",
			Help:    "Background job run time by name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
	}
}

// IncrementActiveRequests marks a request in flight.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(path, method string, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, method).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveJob records one finished background job.
func (m *Metrics) ObserveJob(name string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.jobsTotal.WithLabelValues(name, outcome).Inc()
	m.jobDuration.WithLabelValues(name).Observe(d.Seconds())
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
