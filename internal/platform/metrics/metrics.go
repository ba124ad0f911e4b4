package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the lookup pipeline. All methods
// are nil-safe so tests can pass a nil *Metrics and skip registration.
type Metrics struct {
	// Lookups by outcome: "cache_hit" or "resolved".
	Lookups *prometheus.CounterVec

	// Provider call outcomes by source and status.
	ProviderCalls *prometheus.CounterVec

	// Provider call latency by source.
	ProviderLatency *prometheus.HistogramVec
}

// New registers and returns all pipeline metrics.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phoneintel_lookups_total",
			Help: "Total composite lookups by outcome",
		}, []string{"outcome"}),

		ProviderCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phoneintel_provider_calls_total",
			Help: "Total provider adapter calls by source and result status",
		}, []string{"source", "status"}),

		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phoneintel_provider_duration_seconds",
			Help:    "Duration of outbound provider calls by source",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
	}
}

// IncrementLookup records one composite lookup outcome.
func (m *Metrics) IncrementLookup(outcome string) {
	if m != nil {
		m.Lookups.WithLabelValues(outcome).Inc()
	}
}

// IncrementProviderCall records one adapter call result.
func (m *Metrics) IncrementProviderCall(source, status string) {
	if m != nil {
		m.ProviderCalls.WithLabelValues(source, status).Inc()
	}
}

// ObserveProviderLatency records the duration of one outbound call.
func (m *Metrics) ObserveProviderLatency(source string, d time.Duration) {
	if m != nil {
		m.ProviderLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}
