package search

import (
	"fmt"
	"sort"
)

type edge struct {
	to   string
	cost float64
}

// testGraph is a directed weighted graph keyed by node name. Successors are
// produced in declaration order.
type testGraph map[string][]edge

func (g testGraph) problem(goal string) Problem[string, string, string] {
	return Problem[string, string, string]{
		Name:     "test-graph",
		GoalTest: func(s string) bool { return s == goal },
		Successors: func(s string) ([]Successor[string, string], error) {
			var out []Successor[string, string]
			for _, e := range g[s] {
				out = append(out, Successor[string, string]{Action: s + "->" + e.to, State: e.to, Cost: e.cost})
			}
			return out, nil
		},
		Key: IdentityKey[string],
	}
}

func (g testGraph) nodes() []string {
	seen := map[string]bool{}
	for from, edges := range g {
		seen[from] = true
		for _, e := range edges {
			seen[e.to] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// cheapestByEnumeration returns the minimum cost over all simple paths
// from start to goal, or ok=false when none exists.
func (g testGraph) cheapestByEnumeration(start, goal string) (best float64, ok bool) {
	visited := map[string]bool{}
	var walk func(cur string, cost float64)
	walk = func(cur string, cost float64) {
		if cur == goal {
			if !ok || cost < best {
				best, ok = cost, true
			}
			return
		}
		visited[cur] = true
		for _, e := range g[cur] {
			if !visited[e.to] {
				walk(e.to, cost+e.cost)
			}
		}
		visited[cur] = false
	}
	walk(start, 0)
	return best, ok
}

func tableHeuristic(h map[string]float64) Heuristic[string] {
	return func(s string) float64 { return h[s] }
}

func zeroHeuristic[S any](S) float64 { return 0 }

// linearGraph is A -> B -> C -> D with unit costs.
func linearGraph() (testGraph, map[string]float64) {
	g := testGraph{
		"A": {{"B", 1}},
		"B": {{"C", 1}},
		"C": {{"D", 1}},
	}
	return g, map[string]float64{"A": 3, "B": 2, "C": 1, "D": 0}
}

// shortcutGraph adds an expensive direct edge A -> D that a greedy search
// takes because D has the lowest heuristic.
func shortcutGraph() (testGraph, map[string]float64) {
	g, h := linearGraph()
	g["A"] = append(g["A"], edge{"D", 10})
	return g, h
}

func mustEngine(t interface{ Fatalf(string, ...any) }, strategy Strategy, h Heuristic[string], opts ...Option) *Engine[string, string, string] {
	e, err := New[string, string, string](strategy, h, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func nodeName(i int) string {
	return fmt.Sprintf("n%02d", i)
}
