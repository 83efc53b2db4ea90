package search

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetrics_RecordSearch(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(registry)

	pm.RecordSearch("astar", OutcomeFound, 3, 1, 4, 2*time.Millisecond)
	pm.RecordSearch("astar", OutcomeNoSolution, 5, 0, 2, time.Millisecond)

	if got := testutil.ToFloat64(pm.searches.WithLabelValues("astar", OutcomeFound)); got != 1 {
		t.Errorf("expected 1 found search, got %v", got)
	}
	if got := testutil.ToFloat64(pm.expansions.WithLabelValues("astar")); got != 8 {
		t.Errorf("expected 8 expansions, got %v", got)
	}
	if got := testutil.ToFloat64(pm.duplicates.WithLabelValues("astar")); got != 1 {
		t.Errorf("expected 1 duplicate, got %v", got)
	}
	if n := testutil.CollectAndCount(pm.latency); n != 1 {
		t.Errorf("expected 1 latency series, got %d", n)
	}
}

func TestPrometheusMetrics_Disable(t *testing.T) {
	pm := NewPrometheusMetrics(prometheus.NewRegistry())
	pm.Disable()
	pm.RecordSearch("greedy", OutcomeFound, 1, 0, 1, time.Millisecond)
	if got := testutil.ToFloat64(pm.searches.WithLabelValues("greedy", OutcomeFound)); got != 0 {
		t.Errorf("expected no recording while disabled, got %v", got)
	}

	pm.Enable()
	pm.RecordSearch("greedy", OutcomeFound, 1, 0, 1, time.Millisecond)
	if got := testutil.ToFloat64(pm.searches.WithLabelValues("greedy", OutcomeFound)); got != 1 {
		t.Errorf("expected 1 after Enable, got %v", got)
	}
}

func TestEngine_RecordsMetrics(t *testing.T) {
	pm := NewPrometheusMetrics(prometheus.NewRegistry())
	g, h := linearGraph()
	e := mustEngine(t, AStar(), tableHeuristic(h), WithMetrics(pm))

	if _, err := e.Search(context.Background(), g.problem("D"), "A"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, err := e.Search(context.Background(), g.problem("Z"), "A"); err == nil {
		t.Fatal("expected no solution")
	}

	if got := testutil.ToFloat64(pm.searches.WithLabelValues("astar", OutcomeFound)); got != 1 {
		t.Errorf("expected 1 found, got %v", got)
	}
	if got := testutil.ToFloat64(pm.searches.WithLabelValues("astar", OutcomeNoSolution)); got != 1 {
		t.Errorf("expected 1 no_solution, got %v", got)
	}
	// 3 expansions to reach D, then 4 to exhaust the graph looking for Z.
	if got := testutil.ToFloat64(pm.expansions.WithLabelValues("astar")); got != 7 {
		t.Errorf("expected 7 expansions, got %v", got)
	}
}
