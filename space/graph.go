package space

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/dshills/informed-go/search"
)

// Edge is a directed, weighted connection between two named nodes.
type Edge struct {
	From   string
	To     string
	Action string
	Cost   float64
}

// Graph is a named, weighted directed graph with a per-node heuristic table.
// Outgoing edges keep insertion order, which fixes successor order and so
// the engine's tie-breaking.
type Graph struct {
	name      string
	adj       map[string][]Edge
	order     []string
	heuristic map[string]float64
}

// NewGraph returns an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		name:      name,
		adj:       make(map[string][]Edge),
		heuristic: make(map[string]float64),
	}
}

// Name returns the graph's name.
func (g *Graph) Name() string {
	return g.name
}

// AddNode declares a node. Declaring a node twice is a no-op.
func (g *Graph) AddNode(name string) {
	if _, ok := g.adj[name]; ok {
		return
	}
	g.adj[name] = nil
	g.order = append(g.order, name)
}

// AddEdge adds from -> to labeled "from->to".
func (g *Graph) AddEdge(from, to string, cost float64) error {
	return g.AddLabeledEdge(from, to, from+"->"+to, cost)
}

// AddLabeledEdge adds from -> to with an explicit action label.
func (g *Graph) AddLabeledEdge(from, to, action string, cost float64) error {
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("%w: edge %s->%s has cost %v", ErrNegativeCost, from, to, cost)
	}
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from] = append(g.adj[from], Edge{From: from, To: to, Action: action, Cost: cost})
	return nil
}

// AddUndirectedEdge adds a -> b and b -> a at the same cost.
func (g *Graph) AddUndirectedEdge(a, b string, cost float64) error {
	if err := g.AddEdge(a, b, cost); err != nil {
		return err
	}
	return g.AddEdge(b, a, cost)
}

// SetHeuristic records the estimated remaining cost from node.
func (g *Graph) SetHeuristic(node string, h float64) error {
	if h < 0 || math.IsNaN(h) {
		return fmt.Errorf("%w: heuristic for %s is %v", ErrNegativeCost, node, h)
	}
	g.AddNode(node)
	g.heuristic[node] = h
	return nil
}

// HasNode reports whether name was declared.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// Nodes returns node names sorted.
func (g *Graph) Nodes() []string {
	out := append([]string(nil), g.order...)
	sort.Strings(out)
	return out
}

// Neighbors returns a copy of the outgoing edges of node.
func (g *Graph) Neighbors(node string) []Edge {
	return append([]Edge(nil), g.adj[node]...)
}

// Heuristic returns the table lookup; nodes without an entry estimate 0.
func (g *Graph) Heuristic() search.Heuristic[string] {
	return func(node string) float64 {
		return g.heuristic[node]
	}
}

// Problem returns a search problem whose goal is the node named goal.
func (g *Graph) Problem(goal string) search.Problem[string, string, string] {
	return search.Problem[string, string, string]{
		Name:     g.name,
		GoalTest: func(node string) bool { return node == goal },
		Successors: func(node string) ([]search.Successor[string, string], error) {
			edges := g.adj[node]
			out := make([]search.Successor[string, string], len(edges))
			for i, e := range edges {
				out[i] = search.Successor[string, string]{Action: e.Action, State: e.To, Cost: e.Cost}
			}
			return out, nil
		},
		Key: search.IdentityKey[string],
	}
}

// GraphInstance is a graph plus a start and goal node.
type GraphInstance struct {
	Graph *Graph
	Start string
	Goal  string
}

// NewGraphInstance validates that start and goal exist in g.
func NewGraphInstance(g *Graph, start, goal string) (*GraphInstance, error) {
	for _, n := range []string{start, goal} {
		if !g.HasNode(n) {
			return nil, fmt.Errorf("%w: %q in graph %q", ErrUnknownNode, n, g.name)
		}
	}
	return &GraphInstance{Graph: g, Start: start, Goal: goal}, nil
}

// Name implements Instance.
func (gi *GraphInstance) Name() string { return gi.Graph.name }

// Kind implements Instance.
func (gi *GraphInstance) Kind() string { return KindGraph }

// NewSolver implements Instance.
func (gi *GraphInstance) NewSolver(strategy search.Strategy, opts ...search.Option) (Solver, error) {
	engine, err := search.New[string, string, string](strategy, gi.Graph.Heuristic(), opts...)
	if err != nil {
		return nil, err
	}
	problem := gi.Graph.Problem(gi.Goal)
	return solverFunc(func(ctx context.Context) (Summary, error) {
		res, err := engine.Search(ctx, problem, gi.Start)
		return summarize(gi.Name(), res, func(a string) string { return a }), err
	}), nil
}
