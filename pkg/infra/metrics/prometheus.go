package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var (
	DecisionTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloakgate_decisions_total",
			Help: "Total number of cloaking decisions by destination and reason",
		},
		[]string{"route", "destination", "reason"},
	)

	BlocklistRefreshTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloakgate_blocklist_refresh_total",
			Help: "Blocklist overlay refresh attempts by outcome",
		},
		[]string{"status"},
	)

	ClassifierFailureTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cloakgate_classifier_failures_total",
			Help: "Classifier calls that timed out or errored (failed open)",
		},
	)

	DecisionLatency = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cloakgate_decision_latency_ms",
			Help:    "End-to-end decision latency in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// Registry exposes the private registry for the metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
