package search

import "time"

// Result is the outcome of one Search call.
//
// Counters are filled on every return path, including errors, so callers can
// inspect partial work after cancellation or a budget stop.
type Result[S, A any] struct {
	// RunID uniquely identifies the call in events and the run ledger.
	RunID string

	// Strategy is the name of the strategy that produced this result.
	Strategy string

	// Weight is the strategy's heuristic weight (WeightedAStar only).
	Weight float64

	// Found is true when a goal was reached.
	Found bool

	// Actions is the root-to-goal action sequence. Empty when the initial
	// state is a goal; nil when Found is false.
	Actions []A

	// States lists the states from the initial state to the goal inclusive.
	States []S

	// Cost is the path cost of the goal node.
	Cost float64

	// Depth is len(Actions).
	Depth int

	// Expansions counts states whose successors were generated.
	Expansions int

	// Generated counts nodes pushed onto the frontier, including the root.
	Generated int

	// DuplicatesSkipped counts frontier entries dropped at pop because
	// their state was already expanded.
	DuplicatesSkipped int

	// PeakFrontier is the largest frontier size reached.
	PeakFrontier int

	// Duration is the wall time of the call.
	Duration time.Duration
}
