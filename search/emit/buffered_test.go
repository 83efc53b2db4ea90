package emit

import (
	"fmt"
	"sync"
	"testing"
)

func TestBufferedEmitter_History(t *testing.T) {
	t.Run("keeps emission order per run", func(t *testing.T) {
		b := NewBufferedEmitter()
		b.Emit(Event{RunID: "r1", Msg: MsgSearchStart})
		b.Emit(Event{RunID: "r2", Msg: MsgSearchStart})
		b.Emit(Event{RunID: "r1", Step: 1, Key: "A", Msg: MsgNodeExpanded})
		b.Emit(Event{RunID: "r1", Step: 1, Key: "B", Msg: MsgGoalReached})

		got := b.GetHistory("r1")
		if len(got) != 3 {
			t.Fatalf("expected 3 events, got %d", len(got))
		}
		wantMsgs := []string{MsgSearchStart, MsgNodeExpanded, MsgGoalReached}
		for i, want := range wantMsgs {
			if got[i].Msg != want {
				t.Errorf("event %d: msg = %q, want %q", i, got[i].Msg, want)
			}
		}

		runs := b.Runs()
		if len(runs) != 2 || runs[0] != "r1" || runs[1] != "r2" {
			t.Errorf("Runs() = %v, want [r1 r2]", runs)
		}
	})

	t.Run("unknown run returns empty slice", func(t *testing.T) {
		b := NewBufferedEmitter()
		got := b.GetHistory("missing")
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		b := NewBufferedEmitter()
		b.Emit(Event{RunID: "r1", Msg: MsgSearchStart})
		got := b.GetHistory("r1")
		got[0].Msg = "mutated"
		if b.GetHistory("r1")[0].Msg != MsgSearchStart {
			t.Error("mutating returned history changed the buffer")
		}
	})
}

func TestBufferedEmitter_Filter(t *testing.T) {
	b := NewBufferedEmitter()
	for i := 1; i <= 5; i++ {
		b.Emit(Event{RunID: "r1", Step: i, Key: fmt.Sprintf("n%d", i), Msg: MsgNodeExpanded})
	}
	b.Emit(Event{RunID: "r1", Step: 5, Key: "n3", Msg: MsgDuplicateSkipped})

	t.Run("by message", func(t *testing.T) {
		got := b.GetHistoryWithFilter("r1", HistoryFilter{Msg: MsgDuplicateSkipped})
		if len(got) != 1 || got[0].Key != "n3" {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("by key", func(t *testing.T) {
		got := b.GetHistoryWithFilter("r1", HistoryFilter{Key: "n3"})
		if len(got) != 2 {
			t.Errorf("expected 2 events for key n3, got %d", len(got))
		}
	})

	t.Run("by step range", func(t *testing.T) {
		minStep, maxStep := 2, 4
		got := b.GetHistoryWithFilter("r1", HistoryFilter{MinStep: &minStep, MaxStep: &maxStep})
		if len(got) != 3 {
			t.Errorf("expected 3 events in steps 2-4, got %d", len(got))
		}
	})
}

func TestBufferedEmitter_Clear(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{RunID: "r1", Msg: MsgSearchStart})
	b.Emit(Event{RunID: "r2", Msg: MsgSearchStart})

	b.Clear("r1")
	if len(b.GetHistory("r1")) != 0 {
		t.Error("r1 should be cleared")
	}
	if len(b.GetHistory("r2")) != 1 {
		t.Error("r2 should be untouched")
	}
	if runs := b.Runs(); len(runs) != 1 || runs[0] != "r2" {
		t.Errorf("Runs() after Clear = %v", runs)
	}

	b.Clear("")
	if len(b.Runs()) != 0 {
		t.Error("Clear(\"\") should remove every run")
	}
}

func TestBufferedEmitter_Concurrent(t *testing.T) {
	b := NewBufferedEmitter()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			runID := fmt.Sprintf("run-%d", w)
			for i := 0; i < 100; i++ {
				b.Emit(Event{RunID: runID, Step: i, Msg: MsgNodeExpanded})
			}
		}(w)
	}
	wg.Wait()

	if got := len(b.Runs()); got != 8 {
		t.Fatalf("expected 8 runs, got %d", got)
	}
	for _, runID := range b.Runs() {
		if got := len(b.GetHistory(runID)); got != 100 {
			t.Errorf("%s: expected 100 events, got %d", runID, got)
		}
	}
}
