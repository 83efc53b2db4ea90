package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dshills/informed-go/search"
	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
	"github.com/dshills/informed-go/space"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatCost(found bool, cost float64) string {
	if !found {
		return "-"
	}
	return fmt.Sprintf("%g", cost)
}

func formatPlan(actions []string) string {
	if len(actions) == 0 {
		return "(empty)"
	}
	return strings.Join(actions, " → ")
}

// renderSummary prints one search result as a key/value table followed by
// the plan and, for grids, the rendered path.
func renderSummary(w io.Writer, sum space.Summary) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Problem", sum.Problem},
		{"Strategy", search.FormatStrategy(sum.Strategy, sum.Weight)},
		{"Found", sum.Found},
		{"Cost", formatCost(sum.Found, sum.Cost)},
		{"Depth", sum.Depth},
		{"Expansions", sum.Expansions},
		{"Generated", sum.Generated},
		{"Duplicates skipped", sum.DuplicatesSkipped},
		{"Peak frontier", sum.PeakFrontier},
		{"Duration", sum.Duration.Round(time.Microsecond)},
		{"Run ID", sum.RunID},
	})
	t.Render()

	if sum.Found {
		_, _ = fmt.Fprintf(w, "Plan: %s\n", formatPlan(sum.Actions))
	}
	if sum.Rendered != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, sum.Rendered)
	}
}

// renderComparison prints several results of one problem side by side.
func renderComparison(w io.Writer, sums []space.Summary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Strategy", "Found", "Cost", "Depth", "Expansions", "Generated", "Peak frontier", "Duration"})
	for _, s := range sums {
		t.AppendRow(table.Row{
			search.FormatStrategy(s.Strategy, s.Weight), s.Found, formatCost(s.Found, s.Cost), s.Depth,
			s.Expansions, s.Generated, s.PeakFrontier, s.Duration.Round(time.Microsecond),
		})
	}
	t.Render()
}

// renderTrace prints the event history of one search call.
func renderTrace(w io.Writer, events []emit.Event) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Step", "Event", "Key", "g", "f", "Frontier"})
	for _, ev := range events {
		t.AppendRow(table.Row{ev.Step, ev.Msg, ev.Key, metaValue(ev.Meta, "g"), metaValue(ev.Meta, "f"), metaValue(ev.Meta, "frontier")})
	}
	t.Render()
}

func metaValue(meta map[string]interface{}, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// renderRuns prints ledger records newest first.
func renderRuns(w io.Writer, runs []store.RunRecord) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 runs)")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Run ID", "Started", "Problem", "Strategy", "Found", "Cost", "Expansions", "Duration (ms)"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID, r.StartedAt.Local().Format(time.DateTime), r.Problem, search.FormatStrategy(r.Strategy, r.Weight),
			r.Found, formatCost(r.Found, r.Cost), r.Expansions, r.DurationMS,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d runs)\n", len(runs))
}

// renderRun prints one ledger record.
func renderRun(w io.Writer, r store.RunRecord) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Run ID", r.RunID},
		{"Started", r.StartedAt.Local().Format(time.RFC3339)},
		{"Problem", r.Problem},
		{"Strategy", search.FormatStrategy(r.Strategy, r.Weight)},
		{"Found", r.Found},
		{"Cost", formatCost(r.Found, r.Cost)},
		{"Depth", r.Depth},
		{"Expansions", r.Expansions},
		{"Generated", r.Generated},
		{"Duration (ms)", r.DurationMS},
	})
	t.Render()
	if r.Found {
		_, _ = fmt.Fprintf(w, "Plan: %s\n", formatPlan(r.Actions))
	}
}
