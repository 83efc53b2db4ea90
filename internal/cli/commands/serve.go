package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/informed-go/internal/config"
	"github.com/dshills/informed-go/search"
	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
	"github.com/dshills/informed-go/space"
)

// maxProblemBytes caps POST /solve bodies.
const maxProblemBytes = 1 << 20

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches over HTTP",
		Long: `Start an HTTP server that solves posted problem documents.

Routes:
  POST /solve?strategy=astar   body: problem YAML or JSON
  GET  /runs                   ?problem= &strategy= &limit=
  GET  /runs/{id}
  GET  /metrics                Prometheus metrics
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return Serve(cmd.Context(), cmdCtx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	return cmd
}

// Server serves search requests.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.Store
	metrics  *search.PrometheusMetrics
	registry *prometheus.Registry
	emitter  emit.Emitter
}

// NewServer builds a server whose searches report to a private Prometheus
// registry. Search events become OpenTelemetry spans on tp when the logger
// enables debug output, since spans are exported to the log.
func NewServer(cmdCtx *CommandContext, tp *sdktrace.TracerProvider) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cmdCtx.Cfg,
		logger:   cmdCtx.Logger,
		store:    cmdCtx.Store,
		metrics:  search.NewPrometheusMetrics(registry),
		registry: registry,
	}
	if tp != nil && cmdCtx.Logger.Enabled(context.Background(), slog.LevelDebug) {
		s.emitter = emit.NewOTelEmitter(tp.Tracer("informed-serve"))
	}
	return s
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cmdCtx *CommandContext) error {
	tp := newTracerProvider(cmdCtx.Logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	s := NewServer(cmdCtx, tp)
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    cmdCtx.Cfg.Serve.Addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	cmdCtx.Logger.Info("starting search server", "addr", srv.Addr, "ledger", cmdCtx.Cfg.Store.Driver)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cmdCtx.Logger.Debug("shutting down search server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/solve", s.handleSolve)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
	})
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProblemBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(body) > maxProblemBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "problem document too large"})
		return
	}

	inst, err := space.Parse(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	name, weight := s.cfg.Strategy, s.cfg.Weight
	if q := r.URL.Query().Get("strategy"); q != "" {
		name = q
	}
	if q := r.URL.Query().Get("weight"); q != "" {
		if weight, err = strconv.ParseFloat(q, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid weight"})
			return
		}
	}
	strategy, err := search.StrategyByName(name, weight)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	opts := append(s.cfg.SearchOptions(), search.WithLogger(s.logger), search.WithMetrics(s.metrics))
	if s.store != nil {
		opts = append(opts, search.WithStore(s.store))
	}
	if s.emitter != nil {
		opts = append(opts, search.WithEmitter(s.emitter))
	}

	sum, err := space.Solve(r.Context(), inst, strategy, opts...)
	if err := searchFailure(err); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, search.ErrMaxExpansionsExceeded) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("search failed", "problem", inst.Name(), "strategy", strategy.Name, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "run ledger is disabled"})
		return
	}
	q := r.URL.Query()
	filter := store.RunFilter{Problem: q.Get("problem"), Strategy: q.Get("strategy"), Limit: 50}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "run ledger is disabled"})
		return
	}
	rec, err := s.store.LoadRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "run not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
