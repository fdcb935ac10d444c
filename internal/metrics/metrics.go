// Package metrics provides the centralized Prometheus registry for the
// estimation engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EstimationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "estimations_total",
		Help:      "Total number of probability estimations by sport",
	}, []string{"sport"})
	OrchestrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "orchestrations_total",
		Help:      "Total number of orchestration workflow runs",
	})
	OrchestrationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "orchestration_failures_total",
		Help:      "Total number of orchestration failures by step",
	}, []string{"step"})
	KellyCalculationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "kelly_calculations_total",
		Help:      "Total number of Kelly stake calculations",
	})
	BetsLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "bets_logged_total",
		Help:      "Total number of bet records written",
	})
	TeamResolutionMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edgeline",
		Name:      "team_resolution_misses_total",
		Help:      "Total number of team name resolutions that found no match",
	})
)

// Gauge metrics
var (
	LoadedTeams = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "edgeline",
		Name:      "loaded_teams",
		Help:      "Number of team snapshots loaded per sport",
	}, []string{"sport"})
)

// Histogram metrics
var (
	OrchestrationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "edgeline",
		Name:      "orchestration_duration_seconds",
		Help:      "Duration of full orchestration runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EstimationsTotal)
		registry.MustRegister(OrchestrationsTotal)
		registry.MustRegister(OrchestrationFailuresTotal)
		registry.MustRegister(KellyCalculationsTotal)
		registry.MustRegister(BetsLoggedTotal)
		registry.MustRegister(TeamResolutionMissesTotal)
		registry.MustRegister(LoadedTeams)
		registry.MustRegister(OrchestrationDuration)
	})
	return registry
}

// Handler returns an HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
