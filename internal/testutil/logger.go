// Package testutil provides test helpers shared across packages.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Problem documents used by CLI and server tests.
const (
	// LinearGraph has a cheap chain A->B->C->D (cost 3) and an expensive
	// shortcut A->D (cost 10) that greedy search prefers.
	LinearGraph = `name: linear
kind: graph
start: A
goal: D
edges:
  - {from: A, to: B, cost: 1}
  - {from: B, to: C, cost: 1}
  - {from: C, to: D, cost: 1}
  - {from: A, to: D, cost: 10}
heuristic: {A: 3, B: 2, C: 1, D: 0}
`

	// SealedGrid has no path from S to G.
	SealedGrid = `name: sealed
kind: grid
grid: |
  S.#G
`

	// Swamp is a grid where A* costs 6 and greedy costs 30.
	Swamp = `name: swamp
kind: grid
grid: |
  S999.
  .###.
  ....G
`
)

// WriteProblem writes body to name inside a fresh temp dir and returns the path.
func WriteProblem(t testing.TB, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
