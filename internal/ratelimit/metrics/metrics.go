package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RateLimited     prometheus.Counter
	LimiterFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "georef_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		LimiterFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "georef_rate_limiter_failures_total",
			Help: "Total number of limiter errors that let a request through",
		}),
	}
}

func (m *Metrics) IncrementRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

func (m *Metrics) IncrementLimiterFailures() {
	if m == nil {
		return
	}
	m.LimiterFailures.Inc()
}
