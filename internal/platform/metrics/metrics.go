// Package metrics exposes the engine's Prometheus collectors. The filter
// budget counter is the observability half of the query performance
// contract: a slow pass is reported, never silently degraded.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	FilterPassDuration  prometheus.Histogram
	FilterBudgetOverrun prometheus.Counter

	CasesGenerated     prometheus.Counter
	AllocationFailures *prometheus.CounterVec
	ReordersTotal      *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		FilterPassDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "filter",
			Name:      "pass_duration_seconds",
			Help:      "Full filter pass latency over the active schedule.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),

		FilterBudgetOverrun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "filter",
			Name:      "budget_overruns_total",
			Help:      "Filter passes that exceeded the latency budget. Alert if growing.",
		}),

		CasesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "allocation",
			Name:      "cases_generated_total",
			Help:      "Total scheduled cases produced by generation runs.",
		}),

		AllocationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "allocation",
			Name:      "theatre_day_failures_total",
			Help:      "Theatre-days skipped because a pool was empty.",
		}, []string{"theatre"}),

		ReordersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "listorder",
			Name:      "reorders_total",
			Help:      "Reorder operations by kind and outcome.",
		}, []string{"kind", "outcome"}),

		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "cases",
			Name:      "status_transitions_total",
			Help:      "Case status transitions by target status.",
		}, []string{"to"}),
	}
}

// Handler returns the Prometheus text exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
