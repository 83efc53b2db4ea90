package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search"
	"github.com/dshills/informed-go/space"
)

// comparedStrategies returns the strategies compare runs, in display order.
func comparedStrategies(weight float64) []search.Strategy {
	return []search.Strategy{search.AStar(), search.Greedy(), search.UniformCost(), search.WeightedAStar(weight)}
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <problem-file>",
		Short: "Run every strategy on one problem side by side",
		Long: `Search one problem with A*, greedy best-first, uniform-cost and weighted A*
and print cost and work for each. A* and uniform-cost find the cheapest path
when the heuristic is admissible; greedy usually expands fewer nodes but may
return a more expensive path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0])
		},
	}
	return cmd
}

func runCompare(cmd *cobra.Command, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	inst, err := space.Load(path)
	if err != nil {
		return err
	}

	var sums []space.Summary
	for _, strategy := range comparedStrategies(cmdCtx.Cfg.Weight) {
		sum, err := space.Solve(cmd.Context(), inst, strategy, cmdCtx.SearchOptions()...)
		if err := searchFailure(err); err != nil {
			return fmt.Errorf("%s: %w", strategy.Name, err)
		}
		sums = append(sums, sum)
	}

	if cmdCtx.Cfg.Output == config.OutputJSON {
		return renderJSON(cmd.OutOrStdout(), sums)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Problem: %s (%s)\n", inst.Name(), inst.Kind())
	renderComparison(cmd.OutOrStdout(), sums)
	return nil
}
