package store

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Store.
//
// Data is lost when the process exits.
type MemStore struct {
	mu     sync.RWMutex
	runs   map[string]RunRecord
	closed bool
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs: make(map[string]RunRecord),
	}
}

// SaveRun stores a copy of rec.
func (m *MemStore) SaveRun(_ context.Context, rec RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	rec.Actions = append([]string(nil), rec.Actions...)
	m.runs[rec.RunID] = rec
	return nil
}

// LoadRun retrieves a record by RunID.
func (m *MemStore) LoadRun(_ context.Context, runID string) (RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return RunRecord{}, ErrClosed
	}
	rec, ok := m.runs[runID]
	if !ok {
		return RunRecord{}, ErrNotFound
	}
	rec.Actions = append([]string(nil), rec.Actions...)
	return rec, nil
}

// ListRuns returns matching records newest first.
func (m *MemStore) ListRuns(_ context.Context, filter RunFilter) ([]RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	out := make([]RunRecord, 0, len(m.runs))
	for _, rec := range m.runs {
		if filter.Problem != "" && rec.Problem != filter.Problem {
			continue
		}
		if filter.Strategy != "" && rec.Strategy != filter.Strategy {
			continue
		}
		rec.Actions = append([]string(nil), rec.Actions...)
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].RunID > out[j].RunID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Close marks the store closed. Further calls return ErrClosed.
func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
