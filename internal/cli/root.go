// Package cli provides the command-line interface for informed.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-go/internal/cli/commands"
	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "informed",
		Short: "informed - A* and greedy best-first search",
		Long: `informed searches weighted graphs and terrain grids with A*, greedy
best-first, uniform-cost and weighted A*, and keeps a ledger of every run.

Configuration is read from flags, INFORMED_* environment variables,
./informed.yaml, then built-in defaults, in that order.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./informed.yaml)")
	pf.StringP("strategy", "s", "", "Search strategy (astar|greedy|ucs|weighted)")
	pf.Float64("weight", config.DefaultWeight, "Heuristic weight for the weighted strategy")
	pf.Int("max-expansions", 0, "Expansion budget per search (0 = unlimited)")
	pf.StringP("output", "o", "", "Output format (table|json)")
	pf.Bool("trace", false, "Print the search event log")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json)")
	pf.String("store-driver", "", "Run ledger driver (sqlite|mysql|memory|none)")
	pf.String("store-dsn", "", "Run ledger path or DSN")

	_ = rootCmd.RegisterFlagCompletionFunc("strategy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return search.StrategyNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewSolveCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewBenchCommand())
	rootCmd.AddCommand(commands.NewRunsCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
