package commands

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/space"
)

// benchRow aggregates the repeated runs of one (problem, strategy) pair.
type benchRow struct {
	Problem       string        `json:"problem"`
	Strategy      string        `json:"strategy"`
	Runs          int           `json:"runs"`
	Found         bool          `json:"found"`
	Cost          float64       `json:"cost"`
	Expansions    int           `json:"expansions"`
	Deterministic bool          `json:"deterministic"`
	MeanDuration  time.Duration `json:"mean_duration_ns"`

	first space.Summary
	total time.Duration
}

func (r *benchRow) add(sum space.Summary) {
	if r.Runs == 0 {
		r.first = sum
		r.Found, r.Cost, r.Expansions = sum.Found, sum.Cost, sum.Expansions
		r.Deterministic = true
	} else if sum.Found != r.first.Found || sum.Cost != r.first.Cost ||
		sum.Expansions != r.first.Expansions || !equalStrings(sum.Actions, r.first.Actions) {
		r.Deterministic = false
	}
	r.Runs++
	r.total += sum.Duration
	r.MeanDuration = r.total / time.Duration(r.Runs)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NewBenchCommand creates the bench command.
func NewBenchCommand() *cobra.Command {
	var (
		workers int
		repeat  int
	)

	cmd := &cobra.Command{
		Use:   "bench <problem-file>...",
		Short: "Run problems x strategies concurrently and summarize",
		Long: `Search every problem file with every strategy, repeating each pair and
running up to --workers searches at once. Each pair shares one engine across
its repeats, so the table also reports whether concurrent calls agreed.`,
		Example: `  informed bench testdata/*.yaml --workers 8 --repeat 20`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, args, workers, repeat)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Maximum concurrent searches")
	cmd.Flags().IntVarP(&repeat, "repeat", "n", 5, "Runs per problem and strategy")
	return cmd
}

func runBench(cmd *cobra.Command, paths []string, workers, repeat int) error {
	if workers < 1 || repeat < 1 {
		return fmt.Errorf("--workers and --repeat must be >= 1")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var rows []*benchRow
	var solvers []space.Solver
	for _, path := range paths {
		inst, err := space.Load(path)
		if err != nil {
			return err
		}
		for _, strategy := range comparedStrategies(cmdCtx.Cfg.Weight) {
			solver, err := inst.NewSolver(strategy, cmdCtx.SearchOptions()...)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", inst.Name(), strategy.Name, err)
			}
			rows = append(rows, &benchRow{Problem: inst.Name(), Strategy: strategy.Label()})
			solvers = append(solvers, solver)
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, solver := range solvers {
		row := rows[i]
		for n := 0; n < repeat; n++ {
			g.Go(func() error {
				sum, err := solver.Solve(ctx)
				if err := searchFailure(err); err != nil {
					return fmt.Errorf("%s/%s: %w", row.Problem, row.Strategy, err)
				}
				mu.Lock()
				row.add(sum)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	cmdCtx.Logger.Info("bench finished", "problems", len(paths), "searches", len(solvers)*repeat, "workers", workers)

	if cmdCtx.Cfg.Output == config.OutputJSON {
		return renderJSON(cmd.OutOrStdout(), rows)
	}
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Problem", "Strategy", "Runs", "Found", "Cost", "Expansions", "Deterministic", "Mean duration"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Problem, r.Strategy, r.Runs, r.Found, formatCost(r.Found, r.Cost),
			r.Expansions, r.Deterministic, r.MeanDuration.Round(time.Microsecond),
		})
	}
	t.Render()
	return nil
}
