package emit

// MultiEmitter fans every event out to a fixed list of emitters, in order.
type MultiEmitter struct {
	emitters []Emitter
}

// NewMultiEmitter creates a MultiEmitter. Nil entries are dropped.
func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	kept := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return &MultiEmitter{emitters: kept}
}

// Emit forwards the event to every wrapped emitter.
func (m *MultiEmitter) Emit(event Event) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
