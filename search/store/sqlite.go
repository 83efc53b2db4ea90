package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store.
//
// The path may be a file ("./runs.db") or ":memory:". The schema is created on
// first use and the database runs in WAL mode.
type SQLiteStore struct {
	sqlLedger
	path string
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed ledger.
//
// Example:
//
//	st, err := store.NewSQLiteStore("./runs.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time; a single connection also keeps
	// ":memory:" databases alive for the lifetime of the store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	st := &SQLiteStore{
		sqlLedger: sqlLedger{
			db: db,
			upsert: `
				INSERT INTO search_runs (run_id, problem, strategy, weight, found, cost, depth, expansions, generated, actions, started_at_ns, duration_ms)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(run_id) DO UPDATE SET
					problem = excluded.problem,
					strategy = excluded.strategy,
					weight = excluded.weight,
					found = excluded.found,
					cost = excluded.cost,
					depth = excluded.depth,
					expansions = excluded.expansions,
					generated = excluded.generated,
					actions = excluded.actions,
					started_at_ns = excluded.started_at_ns,
					duration_ms = excluded.duration_ms
			`,
		},
		path: path,
	}

	if err := st.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			run_id TEXT NOT NULL PRIMARY KEY,
			problem TEXT NOT NULL,
			strategy TEXT NOT NULL,
			weight REAL NOT NULL DEFAULT 0,
			found INTEGER NOT NULL,
			cost REAL NOT NULL,
			depth INTEGER NOT NULL,
			expansions INTEGER NOT NULL,
			generated INTEGER NOT NULL,
			actions TEXT NOT NULL,
			started_at_ns INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}
	if err := s.addWeightColumn(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_started ON search_runs(started_at_ns)"); err != nil {
		return fmt.Errorf("failed to create idx_runs_started: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_runs_problem_strategy ON search_runs(problem, strategy)"); err != nil {
		return fmt.Errorf("failed to create idx_runs_problem_strategy: %w", err)
	}
	return nil
}

// addWeightColumn upgrades ledgers created before runs carried a weight.
func (s *SQLiteStore) addWeightColumn(ctx context.Context) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info('search_runs') WHERE name = 'weight'").Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect search_runs: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "ALTER TABLE search_runs ADD COLUMN weight REAL NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("failed to add weight column: %w", err)
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}
