package search

import "testing"

func TestFrontier_OrdersByPriority(t *testing.T) {
	f := newFrontier()
	f.push(0, 5)
	f.push(1, 1)
	f.push(2, 3)

	want := []NodeID{1, 2, 0}
	for i, id := range want {
		e, ok := f.pop()
		if !ok {
			t.Fatalf("pop %d: frontier unexpectedly empty", i)
		}
		if e.id != id {
			t.Errorf("pop %d: expected node %d, got %d", i, id, e.id)
		}
	}
	if _, ok := f.pop(); ok {
		t.Error("expected empty frontier")
	}
}

func TestFrontier_FIFOTieBreak(t *testing.T) {
	f := newFrontier()
	for i := 0; i < 10; i++ {
		f.push(NodeID(i), 7)
	}
	for i := 0; i < 10; i++ {
		e, _ := f.pop()
		if e.id != NodeID(i) {
			t.Fatalf("expected insertion order: pop %d returned %d", i, e.id)
		}
	}
}

func TestFrontier_PeakSize(t *testing.T) {
	f := newFrontier()
	f.push(0, 1)
	f.push(1, 1)
	f.push(2, 1)
	_, _ = f.pop()
	_, _ = f.pop()
	f.push(3, 1)

	if f.peak != 3 {
		t.Errorf("expected peak 3, got %d", f.peak)
	}
	if f.len() != 2 {
		t.Errorf("expected len 2, got %d", f.len())
	}
}

func TestExploredSet(t *testing.T) {
	s := newExploredSet[string]()
	if s.contains("A") {
		t.Error("empty set reports A")
	}
	s.add("A")
	s.add("A")
	if !s.contains("A") {
		t.Error("expected A after add")
	}
	if s.len() != 1 {
		t.Errorf("expected len 1, got %d", s.len())
	}
}
