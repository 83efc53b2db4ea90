package search

import (
	"fmt"
	"math"
	"strings"
)

// PriorityFunc combines a node's path cost g and heuristic estimate h into
// its frontier priority. Lower pops first.
type PriorityFunc func(pathCost, h float64) float64

// Strategy is a named priority function.
//
// Name is a fixed identifier from the Strategy* constants and is used as a
// metrics label and ledger key. Parameters such as the heuristic weight are
// carried separately so they never widen label cardinality.
type Strategy struct {
	Name     string
	Priority PriorityFunc
	// Weight is the heuristic weight of WeightedAStar; 0 for other strategies.
	Weight float64
}

// Label is a display name that includes the weight, e.g. "weighted(1.5)".
func (s Strategy) Label() string {
	return FormatStrategy(s.Name, s.Weight)
}

// FormatStrategy renders a strategy name with its weight for display.
func FormatStrategy(name string, weight float64) string {
	if name != StrategyWeightedAStar {
		return name
	}
	return fmt.Sprintf("%s(%g)", name, weight)
}

// Strategy names accepted by StrategyByName.
const (
	StrategyAStar         = "astar"
	StrategyGreedy        = "greedy"
	StrategyUniformCost   = "ucs"
	StrategyWeightedAStar = "weighted"
)

// AStar orders by f = g + h.
func AStar() Strategy {
	return Strategy{
		Name:     StrategyAStar,
		Priority: func(g, h float64) float64 { return g + h },
	}
}

// Greedy orders by h alone. Path cost is still tracked but does not affect
// ordering, so the result is not necessarily cheapest.
func Greedy() Strategy {
	return Strategy{
		Name:     StrategyGreedy,
		Priority: func(_, h float64) float64 { return h },
	}
}

// UniformCost orders by g alone and ignores the heuristic.
func UniformCost() Strategy {
	return Strategy{
		Name:     StrategyUniformCost,
		Priority: func(g, _ float64) float64 { return g },
	}
}

// WeightedAStar orders by f = g + w*h. With w > 1 the result may cost up to
// w times the optimum.
func WeightedAStar(w float64) Strategy {
	return Strategy{
		Name:     StrategyWeightedAStar,
		Priority: func(g, h float64) float64 { return g + w*h },
		Weight:   w,
	}
}

// StrategyNames lists the names StrategyByName accepts.
func StrategyNames() []string {
	return []string{StrategyAStar, StrategyGreedy, StrategyUniformCost, StrategyWeightedAStar}
}

// StrategyByName resolves a strategy from configuration. weight is only
// used by "weighted" and must be finite and >= 0.
func StrategyByName(name string, weight float64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyAStar, "a*":
		return AStar(), nil
	case StrategyGreedy, "gbfs":
		return Greedy(), nil
	case StrategyUniformCost, "uniform":
		return UniformCost(), nil
	case StrategyWeightedAStar:
		if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return Strategy{}, fmt.Errorf("%w: weight %v", ErrInvalidWeight, weight)
		}
		return WeightedAStar(weight), nil
	}
	return Strategy{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
}
