package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/informed-go/search"
)

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.SearchStrategy(); err != nil {
		errs = append(errs, err)
	}
	if c.MaxExpansions < 0 {
		errs = append(errs, fmt.Errorf("max_expansions must be >= 0, got %d", c.MaxExpansions))
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown output %q (want %s or %s)", c.Output, OutputTable, OutputJSON))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format))
	}
	switch c.Store.Driver {
	case DriverNone, DriverMemory:
	case DriverSQLite, DriverMySQL:
		if c.Store.DSN == "" {
			errs = append(errs, fmt.Errorf("store.dsn is required for driver %q", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	return errors.Join(errs...)
}

// SearchStrategy resolves Strategy and Weight.
func (c *Config) SearchStrategy() (search.Strategy, error) {
	return search.StrategyByName(c.Strategy, c.Weight)
}

// SearchOptions returns engine options derived from the config.
func (c *Config) SearchOptions() []search.Option {
	return []search.Option{search.WithMaxExpansions(c.MaxExpansions)}
}

// NewLogger builds the operational logger described by Log.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
