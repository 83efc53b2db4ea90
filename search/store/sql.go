package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// sqlLedger holds the query logic shared by the SQLite and MySQL stores.
// Both drivers use "?" placeholders; only DDL and the upsert differ.
type sqlLedger struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	upsert string
}

const selectRunColumns = `run_id, problem, strategy, weight, found, cost, depth, expansions, generated, actions, started_at_ns, duration_ms`

func (s *sqlLedger) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// SaveRun inserts or replaces a record.
func (s *sqlLedger) SaveRun(ctx context.Context, rec RunRecord) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	actions := rec.Actions
	if actions == nil {
		actions = []string{}
	}
	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.upsert,
		rec.RunID, rec.Problem, rec.Strategy, rec.Weight, rec.Found, rec.Cost, rec.Depth,
		rec.Expansions, rec.Generated, string(actionsJSON), rec.StartedAt.UnixNano(), rec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// LoadRun retrieves a record by RunID.
func (s *sqlLedger) LoadRun(ctx context.Context, runID string) (RunRecord, error) {
	if err := s.checkOpen(); err != nil {
		return RunRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+selectRunColumns+" FROM search_runs WHERE run_id = ?", runID)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to load run: %w", err)
	}
	return rec, nil
}

// ListRuns returns matching records newest first.
func (s *sqlLedger) ListRuns(ctx context.Context, filter RunFilter) ([]RunRecord, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []interface{}
	)
	if filter.Problem != "" {
		where = append(where, "problem = ?")
		args = append(args, filter.Problem)
	}
	if filter.Strategy != "" {
		where = append(where, "strategy = ?")
		args = append(args, filter.Strategy)
	}

	query := "SELECT " + selectRunColumns + " FROM search_runs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at_ns DESC, run_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []RunRecord{}
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return out, nil
}

// Close closes the database connection. Safe to call more than once.
func (s *sqlLedger) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *sqlLedger) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var (
		rec         RunRecord
		actionsJSON string
		startedAtNS int64
	)
	err := row.Scan(&rec.RunID, &rec.Problem, &rec.Strategy, &rec.Weight, &rec.Found, &rec.Cost, &rec.Depth,
		&rec.Expansions, &rec.Generated, &actionsJSON, &startedAtNS, &rec.DurationMS)
	if err != nil {
		return RunRecord{}, err
	}
	if err := json.Unmarshal([]byte(actionsJSON), &rec.Actions); err != nil {
		return RunRecord{}, fmt.Errorf("failed to unmarshal actions: %w", err)
	}
	rec.StartedAt = time.Unix(0, startedAtNS).UTC()
	return rec, nil
}
