package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides, e.g. INFORMED_STORE_DRIVER.
const EnvPrefix = "INFORMED_"

// Sections whose keys nest one level: INFORMED_LOG_LEVEL -> log.level.
var sections = []string{"log", "store", "serve"}

// flagKeys maps flags whose names do not follow the key pattern.
var flagKeys = map[string]string{
	"addr": "serve.addr",
}

// findConfigFile returns the explicit path, or informed.yaml / informed.yml
// in the working directory when present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"informed.yaml", "informed.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// nestKey turns a flat snake_case key into a dotted key when it starts
// with a known section.
func nestKey(key string) string {
	for _, s := range sections {
		if strings.HasPrefix(key, s+"_") {
			return s + "." + strings.TrimPrefix(key, s+"_")
		}
	}
	return key
}

// Load resolves configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"strategy":       DefaultStrategy,
		"weight":         DefaultWeight,
		"max_expansions": 0,
		"output":         DefaultOutput,
		"trace":          false,
		"log.level":      DefaultLogLevel,
		"log.format":     DefaultLogFormat,
		"store.driver":   DefaultStoreDriver,
		"store.dsn":      DefaultStoreDSN,
		"serve.addr":     DefaultServeAddr,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: INFORMED_MAX_EXPANSIONS -> max_expansions
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return nestKey(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			// --log-level -> log_level -> log.level
			return nestKey(strings.ReplaceAll(f.Name, "-", "_")), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

type configKey struct{}

type loggerKey struct{}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, or defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Defaults()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// Defaults returns the configuration used when nothing is loaded.
func Defaults() *Config {
	return &Config{
		Strategy: DefaultStrategy,
		Weight:   DefaultWeight,
		Output:   DefaultOutput,
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Store:    StoreConfig{Driver: DefaultStoreDriver, DSN: DefaultStoreDSN},
		Serve:    ServeConfig{Addr: DefaultServeAddr},
	}
}
