package space

import (
	"context"
	"time"

	"github.com/dshills/informed-go/search"
)

// Instance kinds.
const (
	KindGraph = "graph"
	KindGrid  = "grid"
)

// Summary is a type-erased search result for display and transport.
type Summary struct {
	RunID             string        `json:"run_id"`
	Problem           string        `json:"problem"`
	Strategy          string        `json:"strategy"`
	Weight            float64       `json:"weight,omitempty"`
	Found             bool          `json:"found"`
	Cost              float64       `json:"cost"`
	Depth             int           `json:"depth"`
	Expansions        int           `json:"expansions"`
	Generated         int           `json:"generated"`
	DuplicatesSkipped int           `json:"duplicates_skipped"`
	PeakFrontier      int           `json:"peak_frontier"`
	Actions           []string      `json:"actions"`
	Duration          time.Duration `json:"duration_ns"`
	Rendered          string        `json:"rendered,omitempty"`
}

// Solver runs one configured search. Safe for concurrent use.
type Solver interface {
	Solve(ctx context.Context) (Summary, error)
}

// Instance is a loaded problem whose state types are hidden, so callers
// can drive graphs and grids alike.
type Instance interface {
	Name() string
	Kind() string
	// NewSolver builds an engine for strategy. The returned Solver reuses
	// that engine for every call.
	NewSolver(strategy search.Strategy, opts ...search.Option) (Solver, error)
}

// Solve builds a solver and runs it once.
func Solve(ctx context.Context, inst Instance, strategy search.Strategy, opts ...search.Option) (Summary, error) {
	s, err := inst.NewSolver(strategy, opts...)
	if err != nil {
		return Summary{Problem: inst.Name(), Strategy: strategy.Name, Weight: strategy.Weight}, err
	}
	return s.Solve(ctx)
}

type solverFunc func(ctx context.Context) (Summary, error)

func (f solverFunc) Solve(ctx context.Context) (Summary, error) {
	return f(ctx)
}

func summarize[S, A any](problem string, res search.Result[S, A], action func(A) string) Summary {
	sum := Summary{
		RunID:             res.RunID,
		Problem:           problem,
		Strategy:          res.Strategy,
		Weight:            res.Weight,
		Found:             res.Found,
		Cost:              res.Cost,
		Depth:             res.Depth,
		Expansions:        res.Expansions,
		Generated:         res.Generated,
		DuplicatesSkipped: res.DuplicatesSkipped,
		PeakFrontier:      res.PeakFrontier,
		Duration:          res.Duration,
		Actions:           []string{},
	}
	for _, a := range res.Actions {
		sum.Actions = append(sum.Actions, action(a))
	}
	return sum
}
