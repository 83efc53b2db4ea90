package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search"
	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	// Store is nil when the run ledger is disabled.
	Store store.Store
}

// NewCommandContext loads the config and logger from the command context
// and opens the run ledger. The cleanup function must be called.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	st, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if st != nil {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close run ledger", "error", err)
			}
		}
	}
	return &CommandContext{Cfg: cfg, Logger: logger, Store: st}, cleanup, nil
}

// OpenStore opens the configured run ledger. It returns nil for DriverNone.
func OpenStore(sc config.StoreConfig) (store.Store, error) {
	switch sc.Driver {
	case config.DriverNone, "":
		return nil, nil
	case config.DriverMemory:
		return store.NewMemStore(), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(sc.DSN); dir != "." && dir != "" && sc.DSN != ":memory:" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create ledger directory: %w", err)
			}
		}
		st, err := store.NewSQLiteStore(sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open run ledger: %w", err)
		}
		return st, nil
	case config.DriverMySQL:
		st, err := store.NewMySQLStore(sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open run ledger: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
}

// SearchOptions assembles engine options from the config plus extra
// emitters. Search events are also logged when the logger enables Info.
func (c *CommandContext) SearchOptions(emitters ...emit.Emitter) []search.Option {
	opts := c.Cfg.SearchOptions()
	opts = append(opts, search.WithLogger(c.Logger))
	if c.Store != nil {
		opts = append(opts, search.WithStore(c.Store))
	}

	if c.Logger.Enabled(context.Background(), slog.LevelInfo) {
		emitters = append(emitters, emit.NewLogEmitterWithLogger(c.Logger))
	}
	if len(emitters) > 0 {
		opts = append(opts, search.WithEmitter(emit.NewMultiEmitter(emitters...)))
	}
	return opts
}

// requireStore reports a helpful error when the ledger is disabled.
func (c *CommandContext) requireStore() error {
	if c.Store == nil {
		return fmt.Errorf("run ledger is disabled (store.driver=%s)", c.Cfg.Store.Driver)
	}
	return nil
}

// searchFailure drops the normal "no solution" outcome so only real
// failures reach the user. Ledger failures are always reported.
func searchFailure(err error) error {
	if err == nil {
		return nil
	}
	var se *search.SearchError
	if errors.As(err, &se) && se.Code == search.CodeStoreFailed {
		return err
	}
	if errors.Is(err, search.ErrNoSolution) {
		return nil
	}
	return err
}
