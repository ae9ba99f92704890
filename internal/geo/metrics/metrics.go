package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels the result of a lookup.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Metrics provides observability for geographic lookups.
// Tracks data source latency and result outcomes per entity and operation.
type Metrics struct {
	LookupDuration *prometheus.HistogramVec
	LookupResults  *prometheus.CounterVec
}

// New creates the lookup metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "georef_lookup_duration_seconds",
			Help:    "Duration of data source lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"entity", "operation"}),
		LookupResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "georef_lookup_results_total",
			Help: "Lookups by outcome (found, not_found, error)",
		}, []string{"entity", "operation", "outcome"}),
	}
}

// ObserveLookup records a lookup that started at start.
// Safe to call on a nil receiver.
func (m *Metrics) ObserveLookup(entity, operation string, start time.Time, outcome Outcome) {
	if m == nil {
		return
	}
	m.LookupDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
	m.LookupResults.WithLabelValues(entity, operation, string(outcome)).Inc()
}
