package search

import "fmt"

// Successor is one (action, next state, step cost) triple produced by a
// Problem's successor function.
type Successor[S, A any] struct {
	Action A
	State  S
	// Cost must be >= 0 and not NaN.
	Cost float64
}

// Heuristic estimates the remaining cost from a state to the nearest goal.
// It must be pure. A* is only guaranteed optimal when the estimate never
// exceeds the true cost (admissible) and never drops by more than a step's
// cost between neighbors (consistent); neither property is checked.
type Heuristic[S any] func(state S) float64

// Problem describes a state space to the engine.
type Problem[S, A any, K comparable] struct {
	// Name labels the problem in events, metrics and the run ledger.
	Name string

	// GoalTest reports whether state is a goal. Called at most once per
	// popped node, possibly more than once per state.
	GoalTest func(state S) bool

	// Successors lists the moves available from state. A returned error
	// aborts the search.
	Successors func(state S) ([]Successor[S, A], error)

	// Key maps a state to its canonical identity. States with equal keys
	// are treated as the same state.
	Key func(state S) K
}

// Validate reports missing collaborator functions.
func (p Problem[S, A, K]) Validate() error {
	switch {
	case p.GoalTest == nil:
		return fmt.Errorf("%w: GoalTest", ErrNilProblemFunc)
	case p.Successors == nil:
		return fmt.Errorf("%w: Successors", ErrNilProblemFunc)
	case p.Key == nil:
		return fmt.Errorf("%w: Key", ErrNilProblemFunc)
	}
	return nil
}

// IdentityKey is a Key function for states that are already comparable.
func IdentityKey[S comparable](state S) S {
	return state
}
