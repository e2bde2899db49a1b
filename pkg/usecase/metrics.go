package usecase

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records use-case executions.
type Metrics struct {
	Executions *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics registers the use-case metrics on reg. A nil reg leaves them
// unregistered, which suits tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "usecase",
			Name:      "executions_total",
			Help:      "Use-case executions by use case and outcome",
		}, []string{"use_case", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "usecase",
			Name:      "duration_seconds",
			Help:      "Use-case execution duration",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"use_case"}),
	}
	if reg != nil {
		reg.MustRegister(m.Executions, m.Duration)
	}
	return m
}

// Observe records one execution.
func (m *Metrics) Observe(useCase, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Executions.WithLabelValues(useCase, outcome).Inc()
	m.Duration.WithLabelValues(useCase).Observe(d.Seconds())
}
