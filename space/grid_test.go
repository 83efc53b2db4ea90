package space

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/informed-go/search"
)

const swamp = `
S999.
.###.
....G
`

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("swamp", swamp)
	require.NoError(t, err)

	assert.Equal(t, Cell{0, 0}, g.Start())
	assert.Equal(t, Cell{2, 4}, g.Goal())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 5, g.Width())
	assert.True(t, g.Passable(Cell{0, 1}))
	assert.False(t, g.Passable(Cell{1, 1}), "wall")
	assert.False(t, g.Passable(Cell{-1, 0}), "outside")
	assert.False(t, g.Passable(Cell{0, 9}), "outside")
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "\n\n"},
		{"no start", "...G"},
		{"two goals", "S.GG"},
		{"bad glyph", "S.x.G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.name, tt.text)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestGrid_RaggedRowsAreWalled(t *testing.T) {
	g, err := ParseGrid("ragged", "S..\n.\n..G")
	require.NoError(t, err)
	assert.False(t, g.Passable(Cell{1, 1}))

	sum, err := Solve(context.Background(), g, search.AStar())
	require.NoError(t, err)
	assert.Equal(t, 4.0, sum.Cost)
}

func TestGrid_SuccessorOrderAndCost(t *testing.T) {
	g, err := ParseGrid("swamp", swamp)
	require.NoError(t, err)

	succ, err := g.Problem().Successors(Cell{0, 0})
	require.NoError(t, err)
	require.Len(t, succ, 2)
	assert.Equal(t, "right", succ[0].Action)
	assert.Equal(t, 9.0, succ[0].Cost, "entering terrain 9")
	assert.Equal(t, "down", succ[1].Action)
	assert.Equal(t, 1.0, succ[1].Cost)
}

func TestGrid_HeuristicIsAdmissible(t *testing.T) {
	g, err := ParseGrid("swamp", swamp)
	require.NoError(t, err)
	h := g.Heuristic()
	assert.Equal(t, 6.0, h(g.Start()))
	assert.Equal(t, 0.0, h(g.Goal()))

	// Never above the true cost from any open cell.
	ucs := search.UniformCost()
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			cell := Cell{r, c}
			if !g.Passable(cell) {
				continue
			}
			e, err := search.New[Cell, string, Cell](ucs, g.Heuristic())
			require.NoError(t, err)
			res, err := e.Search(context.Background(), g.Problem(), cell)
			require.NoError(t, err)
			assert.LessOrEqual(t, h(cell), res.Cost, "cell %v", cell)
		}
	}
}

func TestGrid_AStarAvoidsExpensiveTerrain(t *testing.T) {
	g, err := ParseGrid("swamp", swamp)
	require.NoError(t, err)
	ctx := context.Background()

	astar, err := Solve(ctx, g, search.AStar())
	require.NoError(t, err)
	assert.Equal(t, 6.0, astar.Cost)
	assert.Equal(t, []string{"down", "down", "right", "right", "right", "right"}, astar.Actions)
	assert.Equal(t, "S999.\n*###.\n****G", astar.Rendered)

	greedy, err := Solve(ctx, g, search.Greedy())
	require.NoError(t, err)
	assert.Equal(t, 30.0, greedy.Cost)
	assert.Equal(t, "S****\n.###*\n....G", greedy.Rendered)
}

func TestGrid_Maze(t *testing.T) {
	inst, err := Load("testdata/maze.yaml")
	require.NoError(t, err)
	assert.Equal(t, KindGrid, inst.Kind())
	ctx := context.Background()

	astar, err := Solve(ctx, inst, search.AStar())
	require.NoError(t, err)
	ucs, err := Solve(ctx, inst, search.UniformCost())
	require.NoError(t, err)

	assert.True(t, astar.Found)
	assert.Equal(t, ucs.Cost, astar.Cost)
	assert.LessOrEqual(t, astar.Expansions, ucs.Expansions)
	assert.Equal(t, float64(len(astar.Actions)), astar.Cost, "unit terrain")
	assert.Contains(t, astar.Rendered, "*")
}

func TestGrid_WalledInGoal(t *testing.T) {
	g, err := ParseGrid("sealed", "S.#G")
	require.NoError(t, err)

	sum, err := Solve(context.Background(), g, search.AStar())
	assert.ErrorIs(t, err, search.ErrNoSolution)
	assert.False(t, sum.Found)
	assert.Empty(t, sum.Rendered)
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "(2,4)", Cell{2, 4}.String())
}
