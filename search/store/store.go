// Package store persists a ledger of finished search calls.
//
// A record summarizes one Search call: outcome, cost, counters and the action
// plan rendered as strings. Search trees are never persisted.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run ID does not exist.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// RunRecord is the persisted summary of one search call.
type RunRecord struct {
	RunID      string    `json:"run_id"`
	Problem    string    `json:"problem"`
	Strategy   string    `json:"strategy"`
	Weight     float64   `json:"weight,omitempty"`
	Found      bool      `json:"found"`
	Cost       float64   `json:"cost"`
	Depth      int       `json:"depth"`
	Expansions int       `json:"expansions"`
	Generated  int       `json:"generated"`
	Actions    []string  `json:"actions"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// RunFilter narrows ListRuns. Zero values mean "no filter".
type RunFilter struct {
	Problem  string
	Strategy string
	// Limit caps the number of records returned (0 = unlimited).
	Limit int
}

// Store provides persistence for the run ledger.
//
// Implementations:
//   - MemStore: in-process maps, for tests and short-lived tools
//   - SQLiteStore: single-file database
//   - MySQLStore: shared relational database
//
// All implementations are safe for concurrent use; a single Engine serving
// concurrent searches writes to one Store.
type Store interface {
	// SaveRun persists a record. Saving an existing RunID replaces it.
	SaveRun(ctx context.Context, rec RunRecord) error

	// LoadRun retrieves a record by RunID, or ErrNotFound.
	LoadRun(ctx context.Context, runID string) (RunRecord, error)

	// ListRuns returns records newest first (by StartedAt, then RunID).
	ListRuns(ctx context.Context, filter RunFilter) ([]RunRecord, error)

	// Close releases resources held by the store.
	Close() error
}
