package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory.
//
// Events are grouped by RunID and kept in emission order. It backs the CLI
// --trace output and most engine tests.
//
// Warning: every event is retained until Clear is called.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
	order  []string           // runIDs in first-seen order
}

// HistoryFilter specifies criteria for filtering a run's history.
//
// All fields are optional and combine with AND logic.
type HistoryFilter struct {
	Key     string // Filter by node key (empty = no filter)
	Msg     string // Filter by message (empty = no filter)
	MinStep *int   // Minimum step number (nil = no filter)
	MaxStep *int   // Maximum step number (nil = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, seen := b.events[event.RunID]; !seen {
		b.order = append(b.order, event.RunID)
	}
	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// Runs returns the run IDs seen so far, in first-seen order.
func (b *BufferedEmitter) Runs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// GetHistory returns a copy of all events for runID in emission order.
// Returns an empty slice if the run is unknown.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	return b.GetHistoryWithFilter(runID, HistoryFilter{})
}

// GetHistoryWithFilter returns a copy of the events for runID matching filter.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := []Event{}
	for _, event := range b.events[runID] {
		if matchesFilter(event, filter) {
			result = append(result, event)
		}
	}
	return result
}

func matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.Key != "" && event.Key != filter.Key {
		return false
	}
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinStep != nil && event.Step < *filter.MinStep {
		return false
	}
	if filter.MaxStep != nil && event.Step > *filter.MaxStep {
		return false
	}
	return true
}

// Clear removes stored events for runID, or every run when runID is empty.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID == "" {
		b.events = make(map[string][]Event)
		b.order = nil
		return
	}
	delete(b.events, runID)
	for i, id := range b.order {
		if id == runID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}
