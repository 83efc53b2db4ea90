package commands

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search"
	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
	"github.com/dshills/informed-go/space"
)

func TestOpenStore(t *testing.T) {
	st, err := OpenStore(config.StoreConfig{Driver: config.DriverNone})
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = OpenStore(config.StoreConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemStore{}, st)

	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	st, err = OpenStore(config.StoreConfig{Driver: config.DriverSQLite, DSN: path})
	require.NoError(t, err)
	require.IsType(t, &store.SQLiteStore{}, st)
	assert.Equal(t, path, st.(*store.SQLiteStore).Path())
	require.NoError(t, st.Close())

	_, err = OpenStore(config.StoreConfig{Driver: "postgres"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestSearchFailure(t *testing.T) {
	assert.NoError(t, searchFailure(nil))
	assert.NoError(t, searchFailure(search.ErrNoSolution))
	assert.NoError(t, searchFailure(fmt.Errorf("wrapped: %w", search.ErrNoSolution)))

	budget := fmt.Errorf("%w after 5", search.ErrMaxExpansionsExceeded)
	assert.ErrorIs(t, searchFailure(budget), search.ErrMaxExpansionsExceeded)

	storeErr := &search.SearchError{Message: "save", Code: search.CodeStoreFailed, Cause: errors.New("disk full")}
	joined := errors.Join(search.ErrNoSolution, storeErr)
	assert.Equal(t, joined, searchFailure(joined))
}

func TestCommandContext_SearchOptions(t *testing.T) {
	cfg := config.Defaults()
	quiet := &CommandContext{Cfg: cfg, Logger: cfg.NewLogger(&bytes.Buffer{})}

	inst, err := space.Parse([]byte("kind: grid\ngrid: |\n  S.G\n"))
	require.NoError(t, err)

	buf := emit.NewBufferedEmitter()
	sum, err := space.Solve(t.Context(), inst, search.AStar(), quiet.SearchOptions(buf)...)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sum.Cost)
	assert.NotEmpty(t, buf.GetHistory(sum.RunID))

	var logs bytes.Buffer
	cfg.Log.Level = "info"
	loud := &CommandContext{Cfg: cfg, Logger: cfg.NewLogger(&logs), Store: store.NewMemStore()}
	sum, err = space.Solve(t.Context(), inst, search.AStar(), loud.SearchOptions()...)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "goal_reached")

	rec, err := loud.Store.LoadRun(t.Context(), sum.RunID)
	require.NoError(t, err)
	assert.True(t, rec.Found)
}

func TestRequireStore(t *testing.T) {
	c := &CommandContext{Cfg: config.Defaults()}
	c.Cfg.Store.Driver = config.DriverNone
	assert.ErrorContains(t, c.requireStore(), "disabled")

	c.Store = store.NewMemStore()
	assert.NoError(t, c.requireStore())
}
