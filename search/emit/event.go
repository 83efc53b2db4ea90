package emit

// Event messages emitted by the search engine.
const (
	MsgSearchStart      = "search_start"
	MsgNodeExpanded     = "node_expanded"
	MsgDuplicateSkipped = "duplicate_skipped"
	MsgGoalReached      = "goal_reached"
	MsgNoSolution       = "no_solution"
	MsgSearchError      = "search_error"
)

// Event represents an observability event emitted during a search call.
type Event struct {
	// RunID identifies the search call that emitted this event.
	RunID string

	// Step is the expansion count at the time of the event.
	// Zero for events emitted before the first expansion.
	Step int

	// Key is a display rendering of the canonical key of the node involved.
	// Empty for call-level events such as search_start.
	Key string

	// Msg names the event (see the Msg* constants).
	Msg string

	// Meta carries event specific data. Common keys:
	//   - "g", "h", "f": path cost, heuristic and priority of a node
	//   - "depth": node depth
	//   - "frontier": frontier size after the event
	//   - "strategy": strategy name
	//   - "error": error text for search_error
	Meta map[string]interface{}
}
