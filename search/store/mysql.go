package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store.
//
// DSN format:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...]
//
// Never hardcode credentials; read the DSN from configuration or the
// environment.
type MySQLStore struct {
	sqlLedger
}

// NewMySQLStore connects to MySQL and creates the schema if needed.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	st := &MySQLStore{
		sqlLedger: sqlLedger{
			db: db,
			upsert: `
				INSERT INTO search_runs (run_id, problem, strategy, weight, found, cost, depth, expansions, generated, actions, started_at_ns, duration_ms)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON DUPLICATE KEY UPDATE
					problem = VALUES(problem),
					strategy = VALUES(strategy),
					weight = VALUES(weight),
					found = VALUES(found),
					cost = VALUES(cost),
					depth = VALUES(depth),
					expansions = VALUES(expansions),
					generated = VALUES(generated),
					actions = VALUES(actions),
					started_at_ns = VALUES(started_at_ns),
					duration_ms = VALUES(duration_ms)
			`,
		},
	}

	if err := st.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return st, nil
}

func (m *MySQLStore) createTables(ctx context.Context) error {
	runsTable := `
		CREATE TABLE IF NOT EXISTS search_runs (
			run_id VARCHAR(64) NOT NULL PRIMARY KEY,
			problem VARCHAR(255) NOT NULL,
			strategy VARCHAR(64) NOT NULL,
			weight DOUBLE NOT NULL DEFAULT 0,
			found BOOLEAN NOT NULL,
			cost DOUBLE NOT NULL,
			depth INT NOT NULL,
			expansions INT NOT NULL,
			generated INT NOT NULL,
			actions JSON NOT NULL,
			started_at_ns BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			INDEX idx_runs_started (started_at_ns),
			INDEX idx_runs_problem_strategy (problem, strategy)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := m.db.ExecContext(ctx, runsTable); err != nil {
		return fmt.Errorf("failed to create search_runs table: %w", err)
	}

	var n int
	err := m.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'search_runs' AND COLUMN_NAME = 'weight'
	`).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect search_runs: %w", err)
	}
	if n == 0 {
		if _, err := m.db.ExecContext(ctx, "ALTER TABLE search_runs ADD COLUMN weight DOUBLE NOT NULL DEFAULT 0 AFTER strategy"); err != nil {
			return fmt.Errorf("failed to add weight column: %w", err)
		}
	}
	return nil
}

// Stats returns connection pool statistics.
func (m *MySQLStore) Stats() sql.DBStats {
	return m.db.Stats()
}
