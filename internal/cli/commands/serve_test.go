package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/internal/testutil"
	"github.com/dshills/informed-go/search/store"
	"github.com/dshills/informed-go/space"
)

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	cmdCtx := &CommandContext{Cfg: config.Defaults(), Logger: testutil.NewTestLogger(t), Store: st}
	srv := httptest.NewServer(NewServer(cmdCtx, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postProblem(t *testing.T, srv *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/solve"+query, "application/yaml", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_Solve(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore())

	t.Run("default strategy", func(t *testing.T) {
		resp := postProblem(t, srv, "", testutil.Swamp)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sum space.Summary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
		assert.Equal(t, "astar", sum.Strategy)
		assert.Equal(t, 6.0, sum.Cost)
		assert.NotEmpty(t, sum.RunID)
	})

	t.Run("strategy query", func(t *testing.T) {
		resp := postProblem(t, srv, "?strategy=greedy", testutil.LinearGraph)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sum space.Summary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
		assert.Equal(t, 10.0, sum.Cost)
	})

	t.Run("weighted", func(t *testing.T) {
		resp := postProblem(t, srv, "?strategy=weighted&weight=2", testutil.LinearGraph)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sum space.Summary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
		assert.Equal(t, "weighted", sum.Strategy)
		assert.Equal(t, 2.0, sum.Weight)
		assert.True(t, sum.Found)
	})

	t.Run("no solution", func(t *testing.T) {
		resp := postProblem(t, srv, "", testutil.SealedGrid)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var sum space.Summary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
		assert.False(t, sum.Found)
	})

	t.Run("bad requests", func(t *testing.T) {
		cases := map[string]struct {
			query string
			body  string
		}{
			"unknown strategy": {"?strategy=bogo", testutil.LinearGraph},
			"bad weight":       {"?strategy=weighted&weight=x", testutil.LinearGraph},
			"bad document":     {"", "kind: nope\n"},
			"not yaml":         {"", "{{{"},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				resp := postProblem(t, srv, tc.query, tc.body)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var e errorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
				assert.NotEmpty(t, e.Error)
			})
		}
	})

	t.Run("too large", func(t *testing.T) {
		resp := postProblem(t, srv, "", strings.Repeat("#", maxProblemBytes+1))
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}

func TestServer_BudgetExceeded(t *testing.T) {
	cfg := config.Defaults()
	cfg.MaxExpansions = 1
	cmdCtx := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
	srv := httptest.NewServer(NewServer(cmdCtx, nil).Router())
	defer srv.Close()

	resp := postProblem(t, srv, "", testutil.LinearGraph)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServer_Runs(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore())

	for _, q := range []string{"", "?strategy=greedy", "?strategy=ucs"} {
		resp := postProblem(t, srv, q, testutil.LinearGraph)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	get := func(path string) *http.Response {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	resp := get("/runs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var runs []store.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 3)
	assert.Equal(t, "ucs", runs[0].Strategy)

	resp = get("/runs?strategy=greedy")
	runs = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"A->D"}, runs[0].Actions)

	resp = get("/runs?limit=2")
	runs = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	assert.Len(t, runs, 2)

	assert.Equal(t, http.StatusBadRequest, get("/runs?limit=-1").StatusCode)

	resp = get("/runs/" + runs[0].RunID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec store.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, runs[0].RunID, rec.RunID)

	assert.Equal(t, http.StatusNotFound, get("/runs/missing").StatusCode)
}

func TestServer_RunsDisabled(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/runs")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	postProblem(t, srv, "", testutil.LinearGraph)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `informed_search_searches_total{outcome="found",strategy="astar"} 1`)
}

func TestServer_WeightedRunsShareOneStrategyLabel(t *testing.T) {
	srv := newTestServer(t, store.NewMemStore())

	weights := []float64{1, 1.25, 2, 3.5, 10}
	for _, w := range weights {
		resp := postProblem(t, srv, fmt.Sprintf("?strategy=weighted&weight=%g", w), testutil.LinearGraph)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/runs?strategy=weighted")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var runs []store.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, len(weights))
	seen := map[float64]bool{}
	for _, r := range runs {
		assert.Equal(t, "weighted", r.Strategy)
		seen[r.Weight] = true
	}
	assert.Len(t, seen, len(weights))

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metrics.Body.Close() }()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)

	series := 0
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(line, "informed_search_searches_total{") {
			series++
		}
	}
	assert.Equal(t, 1, series)
	assert.Contains(t, string(body), fmt.Sprintf(`informed_search_searches_total{outcome="found",strategy="weighted"} %d`, len(weights)))
}
