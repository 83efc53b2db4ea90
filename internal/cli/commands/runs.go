package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search/store"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run ledger",
		Long:  `List and show search runs recorded in the configured run ledger.`,
	}
	cmd.AddCommand(newRunsListCommand(), newRunsShowCommand())
	return cmd
}

func newRunsListCommand() *cobra.Command {
	var filter store.RunFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Example: `  informed runs list --problem romania --strategy greedy
  informed runs list --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.requireStore(); err != nil {
				return err
			}

			runs, err := cmdCtx.Store.ListRuns(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.Output == config.OutputJSON {
				return renderJSON(cmd.OutOrStdout(), runs)
			}
			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Problem, "problem", "", "Only runs of this problem")
	cmd.Flags().StringVar(&filter.Strategy, "by-strategy", "", "Only runs of this strategy")
	cmd.Flags().IntVar(&filter.Limit, "limit", 20, "Maximum runs to list (0 = all)")
	return cmd
}

func newRunsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.requireStore(); err != nil {
				return err
			}

			rec, err := cmdCtx.Store.LoadRun(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("run %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if cmdCtx.Cfg.Output == config.OutputJSON {
				return renderJSON(cmd.OutOrStdout(), rec)
			}
			renderRun(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}
