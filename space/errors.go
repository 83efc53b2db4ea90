package space

import "errors"

var (
	// ErrUnknownNode indicates a graph node name that was never declared.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNegativeCost indicates an edge or heuristic with a negative value.
	ErrNegativeCost = errors.New("negative cost")

	// ErrInvalidGrid indicates grid text that cannot be parsed.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrInvalidProblem indicates a problem document that cannot be loaded.
	ErrInvalidProblem = errors.New("invalid problem")
)
