package search

import (
	"log/slog"

	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
)

// Option is a functional option for configuring an Engine.
//
// Example:
//
//	engine, err := search.NewAStar[Cell, string, Cell](manhattan,
//	    search.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	    search.WithMaxExpansions(100000),
//	)
type Option func(*engineConfig) error

type engineConfig struct {
	emitter       emit.Emitter
	metrics       *PrometheusMetrics
	store         store.Store
	logger        *slog.Logger
	maxExpansions int
}

// WithEmitter sends search events to emitter.
//
// Default: emit.NullEmitter. The emitter is shared by concurrent Search
// calls and must be safe for concurrent use.
func WithEmitter(emitter emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.emitter = emitter
		return nil
	}
}

// WithMetrics records per-call counters and latencies.
func WithMetrics(metrics *PrometheusMetrics) Option {
	return func(cfg *engineConfig) error {
		cfg.metrics = metrics
		return nil
	}
}

// WithStore records a RunRecord for every finished Search call.
func WithStore(st store.Store) Option {
	return func(cfg *engineConfig) error {
		cfg.store = st
		return nil
	}
}

// WithLogger sets the operational logger. Default: discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *engineConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithMaxExpansions bounds the number of expansions per Search call.
//
// Default: 0 (no limit). When the budget is spent before a goal is popped,
// Search returns ErrMaxExpansionsExceeded.
func WithMaxExpansions(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return &SearchError{Message: "max expansions must be >= 0", Code: CodeInvalidOption}
		}
		cfg.maxExpansions = n
		return nil
	}
}
