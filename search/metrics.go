package search

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded on searches_total.
const (
	OutcomeFound          = "found"
	OutcomeNoSolution     = "no_solution"
	OutcomeBudgetExceeded = "budget_exceeded"
	OutcomeCancelled      = "cancelled"
	OutcomeError          = "error"
)

// PrometheusMetrics collects engine metrics, namespaced "informed_search":
//
//   - searches_total (counter): finished Search calls. Labels: strategy, outcome.
//   - expansions_total (counter): expanded nodes. Labels: strategy.
//   - duplicates_skipped_total (counter): stale frontier entries dropped at pop. Labels: strategy.
//   - search_latency_ms (histogram): wall time per call. Labels: strategy.
//   - peak_frontier (histogram): largest frontier size per call. Labels: strategy.
//
// Expose with:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
type PrometheusMetrics struct {
	searches   *prometheus.CounterVec
	expansions *prometheus.CounterVec
	duplicates *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	peak       *prometheus.HistogramVec

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics registers the engine metrics with registry.
// A nil registry uses prometheus.DefaultRegisterer.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		enabled: true,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "informed_search",
			Name:      "searches_total",
			Help:      "Finished search calls by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "informed_search",
			Name:      "expansions_total",
			Help:      "Nodes expanded across all search calls",
		}, []string{"strategy"}),
		duplicates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "informed_search",
			Name:      "duplicates_skipped_total",
			Help:      "Frontier entries discarded because their state was already expanded",
		}, []string{"strategy"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "informed_search",
			Name:      "search_latency_ms",
			Help:      "Search call duration in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000},
		}, []string{"strategy"}),
		peak: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "informed_search",
			Name:      "peak_frontier",
			Help:      "Largest frontier size reached during a search call",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"strategy"}),
	}
}

// RecordSearch records one finished search call.
func (pm *PrometheusMetrics) RecordSearch(strategy, outcome string, expansions, duplicates, peakFrontier int, latency time.Duration) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	if !pm.enabled {
		return
	}

	pm.searches.WithLabelValues(strategy, outcome).Inc()
	pm.expansions.WithLabelValues(strategy).Add(float64(expansions))
	pm.duplicates.WithLabelValues(strategy).Add(float64(duplicates))
	pm.latency.WithLabelValues(strategy).Observe(float64(latency.Microseconds()) / 1000)
	pm.peak.WithLabelValues(strategy).Observe(float64(peakFrontier))
}

// Disable temporarily disables metric recording (useful for testing).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable().
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}
