package space

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/informed-go/search"
)

// Cell addresses a grid square by row and column.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid glyphs.
const (
	GlyphWall  = '#'
	GlyphStart = 'S'
	GlyphGoal  = 'G'
	GlyphOpen  = '.'
	GlyphPath  = '*'
)

type move struct {
	name       string
	dRow, dCol int
}

// Successors are generated in this order.
var moves = []move{
	{"up", -1, 0},
	{"right", 0, 1},
	{"down", 1, 0},
	{"left", 0, -1},
}

// Grid is a 4-connected terrain map. Entering a cell costs its terrain
// value: 1 for '.', 'S' and 'G', or the digit for '1'..'9'. Walls ('#')
// cannot be entered. Rows may differ in length; missing cells are walls.
type Grid struct {
	name    string
	rows    [][]rune
	cost    [][]float64
	start   Cell
	goal    Cell
	minCost float64
}

// ParseGrid reads a grid from text. Leading and trailing blank lines are
// ignored. Exactly one 'S' and one 'G' are required.
func ParseGrid(name, text string) (*Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}

	g := &Grid{name: name, minCost: math.Inf(1)}
	var starts, goals int
	for r, line := range lines {
		row := []rune(strings.TrimRight(line, " \t"))
		costs := make([]float64, len(row))
		for c, ch := range row {
			switch {
			case ch == GlyphWall:
				costs[c] = math.Inf(1)
				continue
			case ch == GlyphStart:
				starts++
				g.start = Cell{r, c}
				costs[c] = 1
			case ch == GlyphGoal:
				goals++
				g.goal = Cell{r, c}
				costs[c] = 1
			case ch == GlyphOpen:
				costs[c] = 1
			case ch >= '1' && ch <= '9':
				costs[c] = float64(ch - '0')
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrInvalidGrid, ch, r, c)
			}
			g.minCost = math.Min(g.minCost, costs[c])
		}
		g.rows = append(g.rows, row)
		g.cost = append(g.cost, costs)
	}

	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: need exactly one %c and one %c, found %d and %d",
			ErrInvalidGrid, GlyphStart, GlyphGoal, starts, goals)
	}
	return g, nil
}

// Name returns the grid's name.
func (g *Grid) Name() string { return g.name }

// Start returns the 'S' cell.
func (g *Grid) Start() Cell { return g.start }

// Goal returns the 'G' cell.
func (g *Grid) Goal() Cell { return g.goal }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// Width returns the length of the longest row.
func (g *Grid) Width() int {
	w := 0
	for _, r := range g.rows {
		w = max(w, len(r))
	}
	return w
}

// Passable reports whether c is inside the grid and not a wall.
func (g *Grid) Passable(c Cell) bool {
	if c.Row < 0 || c.Row >= len(g.cost) || c.Col < 0 || c.Col >= len(g.cost[c.Row]) {
		return false
	}
	return !math.IsInf(g.cost[c.Row][c.Col], 1)
}

// Heuristic is the Manhattan distance to the goal scaled by the cheapest
// terrain, so it never overestimates.
func (g *Grid) Heuristic() search.Heuristic[Cell] {
	return func(c Cell) float64 {
		d := abs(c.Row-g.goal.Row) + abs(c.Col-g.goal.Col)
		return float64(d) * g.minCost
	}
}

// Problem returns a search problem from any cell to the goal.
func (g *Grid) Problem() search.Problem[Cell, string, Cell] {
	return search.Problem[Cell, string, Cell]{
		Name:     g.name,
		GoalTest: func(c Cell) bool { return c == g.goal },
		Successors: func(c Cell) ([]search.Successor[Cell, string], error) {
			out := make([]search.Successor[Cell, string], 0, len(moves))
			for _, m := range moves {
				next := Cell{c.Row + m.dRow, c.Col + m.dCol}
				if !g.Passable(next) {
					continue
				}
				out = append(out, search.Successor[Cell, string]{
					Action: m.name,
					State:  next,
					Cost:   g.cost[next.Row][next.Col],
				})
			}
			return out, nil
		},
		Key: search.IdentityKey[Cell],
	}
}

// Render draws the grid with path cells (other than S and G) marked '*'.
func (g *Grid) Render(path []Cell) string {
	rows := make([][]rune, len(g.rows))
	for i, r := range g.rows {
		rows[i] = append([]rune(nil), r...)
	}
	for _, c := range path {
		if c == g.start || c == g.goal || !g.Passable(c) {
			continue
		}
		rows[c.Row][c.Col] = GlyphPath
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(r))
	}
	return b.String()
}

// Kind implements Instance.
func (g *Grid) Kind() string { return KindGrid }

// NewSolver implements Instance. Found summaries carry the rendered path.
func (g *Grid) NewSolver(strategy search.Strategy, opts ...search.Option) (Solver, error) {
	engine, err := search.New[Cell, string, Cell](strategy, g.Heuristic(), opts...)
	if err != nil {
		return nil, err
	}
	problem := g.Problem()
	return solverFunc(func(ctx context.Context) (Summary, error) {
		res, err := engine.Search(ctx, problem, g.start)
		sum := summarize(g.name, res, func(a string) string { return a })
		if res.Found {
			sum.Rendered = g.Render(res.States)
		}
		return sum, err
	}), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
