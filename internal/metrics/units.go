// Package metrics provides Prometheus collectors and runtime memory sampling
// for the demo runner.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UnitMetrics tracks demo unit executions for Prometheus scraping.
// The sequencer reports each finished unit through ObserveUnitRun.
type UnitMetrics struct {
	runsTotal *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewUnitMetrics registers the unit collectors with the given registerer.
// Passing prometheus.DefaultRegisterer wires them into the default registry;
// tests pass a fresh prometheus.NewRegistry() to stay isolated.
func NewUnitMetrics(reg prometheus.Registerer) *UnitMetrics {
	factory := promauto.With(reg)
	return &UnitMetrics{
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asynclab_unit_runs_total",
			Help: "Number of demo unit executions by unit name and outcome.",
		}, []string{"unit", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asynclab_unit_duration_seconds",
			Help:    "Wall-clock duration of demo unit executions.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"unit"}),
	}
}

// ObserveUnitRun records one finished unit execution.
func (m *UnitMetrics) ObserveUnitRun(unit string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.runsTotal.WithLabelValues(unit, outcome).Inc()
	m.duration.WithLabelValues(unit).Observe(d.Seconds())
}
