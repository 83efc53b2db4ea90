package search

import (
	"errors"
	"strings"
	"testing"
)

func TestProblem_Validate(t *testing.T) {
	g, _ := linearGraph()
	valid := g.problem("D")

	tests := []struct {
		name    string
		mutate  func(p *Problem[string, string, string])
		missing string
	}{
		{"nil goal test", func(p *Problem[string, string, string]) { p.GoalTest = nil }, "GoalTest"},
		{"nil successors", func(p *Problem[string, string, string]) { p.Successors = nil }, "Successors"},
		{"nil key", func(p *Problem[string, string, string]) { p.Key = nil }, "Key"},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid problem rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrNilProblemFunc) {
				t.Fatalf("expected ErrNilProblemFunc, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("expected error to name %s, got %q", tt.missing, err)
			}
		})
	}
}

func TestIdentityKey(t *testing.T) {
	type point struct{ x, y int }
	if IdentityKey(point{1, 2}) != (point{1, 2}) {
		t.Error("IdentityKey must return its argument")
	}
}
