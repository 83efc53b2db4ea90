package emit

import "testing"

func TestMultiEmitter_FanOut(t *testing.T) {
	a := NewBufferedEmitter()
	b := NewBufferedEmitter()
	multi := NewMultiEmitter(a, nil, b)

	multi.Emit(Event{RunID: "run-1", Msg: MsgSearchStart})
	multi.Emit(Event{RunID: "run-1", Step: 1, Key: "A", Msg: MsgNodeExpanded})

	for name, buf := range map[string]*BufferedEmitter{"first": a, "second": b} {
		if got := len(buf.GetHistory("run-1")); got != 2 {
			t.Errorf("%s emitter: got %d events, want 2", name, got)
		}
	}
}

func TestMultiEmitter_Empty(t *testing.T) {
	// Should not panic.
	NewMultiEmitter().Emit(Event{RunID: "run-1", Msg: MsgSearchStart})
}
