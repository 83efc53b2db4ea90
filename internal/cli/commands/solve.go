package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/space"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Solve a problem file with the configured strategy",
		Long: `Load a graph or grid problem file and search it with the configured
strategy. The outcome is printed and recorded in the run ledger.

A problem with no path to the goal is not an error: the result reports
found=false and the command exits 0.`,
		Example: `  # A* (default)
  informed solve testdata/romania.yaml

  # Greedy best-first, JSON output
  informed solve maze.yaml --strategy greedy -o json

  # Print every search event
  informed solve maze.yaml --trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0])
		},
	}
	return cmd
}

func runSolve(cmd *cobra.Command, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	inst, err := space.Load(path)
	if err != nil {
		return err
	}
	strategy, err := cmdCtx.Cfg.SearchStrategy()
	if err != nil {
		return err
	}

	var buf *emit.BufferedEmitter
	var emitters []emit.Emitter
	if cmdCtx.Cfg.Trace {
		buf = emit.NewBufferedEmitter()
		emitters = append(emitters, buf)
	}

	sum, err := space.Solve(cmd.Context(), inst, strategy, cmdCtx.SearchOptions(emitters...)...)
	if err := searchFailure(err); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if cmdCtx.Cfg.Output == config.OutputJSON {
		return renderJSON(out, sum)
	}
	renderSummary(out, sum)
	if buf != nil {
		_, _ = fmt.Fprintln(out)
		renderTrace(out, buf.GetHistory(sum.RunID))
	}
	return nil
}
