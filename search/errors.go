package search

import "errors"

// ErrNoSolution indicates the frontier emptied without reaching a goal.
// It is a normal negative result; the returned Result has Found == false.
var ErrNoSolution = errors.New("no solution")

// ErrMaxExpansionsExceeded indicates the search hit the expansion budget
// set with WithMaxExpansions before reaching a goal.
var ErrMaxExpansionsExceeded = errors.New("search exceeded maximum expansions")

// ErrInvalidStepCost indicates a successor reported a negative or NaN cost.
var ErrInvalidStepCost = errors.New("invalid step cost")

// ErrNilProblemFunc indicates a Problem is missing a collaborator function.
var ErrNilProblemFunc = errors.New("problem function is nil")

// ErrNilHeuristic indicates an engine was constructed without a heuristic.
var ErrNilHeuristic = errors.New("heuristic is nil")

// ErrNilPriority indicates a Strategy without a priority function.
var ErrNilPriority = errors.New("strategy priority function is nil")

// ErrUnknownStrategy indicates StrategyByName did not recognize a name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ErrInvalidWeight indicates an unusable weighted A* weight.
var ErrInvalidWeight = errors.New("invalid strategy weight")

// Error codes carried by SearchError.
const (
	CodeSuccessorFailed = "SUCCESSOR_FAILED"
	CodeStoreFailed     = "STORE_FAILED"
	CodeInvalidOption   = "INVALID_OPTION"
)

// SearchError wraps a failure raised by a collaborator of the engine.
type SearchError struct {
	Message string
	Code    string
	Cause   error
}

func (e *SearchError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *SearchError) Unwrap() error {
	return e.Cause
}
