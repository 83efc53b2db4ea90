// Package config loads informed CLI configuration.
package config

// Default values.
const (
	DefaultStrategy    = "astar"
	DefaultWeight      = 1.5
	DefaultOutput      = OutputTable
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultStoreDriver = DriverSQLite
	DefaultStoreDSN    = ".informed/runs.db"
	DefaultServeAddr   = ":8080"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Run ledger drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Strategy names the search strategy (astar, greedy, ucs, weighted).
	Strategy string `koanf:"strategy"`
	// Weight is the heuristic weight for the weighted strategy.
	Weight float64 `koanf:"weight"`
	// MaxExpansions bounds each search call; 0 means unlimited.
	MaxExpansions int    `koanf:"max_expansions"`
	Output        string `koanf:"output"`
	// Trace prints the event log of each search.
	Trace bool `koanf:"trace"`

	Log   LogConfig   `koanf:"log"`
	Store StoreConfig `koanf:"store"`
	Serve ServeConfig `koanf:"serve"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LogConfig controls operational logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StoreConfig selects the run ledger.
type StoreConfig struct {
	Driver string `koanf:"driver"`
	// DSN is a file path for sqlite and a connection string for mysql.
	DSN string `koanf:"dsn"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}
