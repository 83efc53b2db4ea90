package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/informed-go/search/emit"
	"github.com/dshills/informed-go/search/store"
)

// Engine runs informed searches with a fixed strategy and heuristic.
//
// Type parameters:
//   - S: state type
//   - A: action type
//   - K: canonical key type used for duplicate detection
//
// An Engine holds no per-call state and may serve concurrent Search calls.
type Engine[S, A any, K comparable] struct {
	strategy  Strategy
	heuristic Heuristic[S]

	emitter       emit.Emitter
	metrics       *PrometheusMetrics
	store         store.Store
	logger        *slog.Logger
	maxExpansions int

	// emitting is false for the default NullEmitter, letting the hot loop
	// skip building events nobody reads.
	emitting bool

	totalExpansions atomic.Int64
}

// New creates an Engine for strategy and heuristic h.
//
// Returns ErrNilHeuristic or ErrNilPriority for missing functions, or the
// first error returned by an option.
func New[S, A any, K comparable](strategy Strategy, h Heuristic[S], opts ...Option) (*Engine[S, A, K], error) {
	if h == nil {
		return nil, ErrNilHeuristic
	}
	if strategy.Priority == nil {
		return nil, ErrNilPriority
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	e := &Engine[S, A, K]{
		strategy:      strategy,
		heuristic:     h,
		emitter:       cfg.emitter,
		metrics:       cfg.metrics,
		store:         cfg.store,
		logger:        cfg.logger,
		maxExpansions: cfg.maxExpansions,
		emitting:      true,
	}
	if e.emitter == nil {
		e.emitter = emit.NewNullEmitter()
	}
	if _, ok := e.emitter.(*emit.NullEmitter); ok {
		e.emitting = false
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e, nil
}

// NewAStar creates an Engine ordering the frontier by g + h.
func NewAStar[S, A any, K comparable](h Heuristic[S], opts ...Option) (*Engine[S, A, K], error) {
	return New[S, A, K](AStar(), h, opts...)
}

// NewGreedy creates an Engine ordering the frontier by h alone.
func NewGreedy[S, A any, K comparable](h Heuristic[S], opts ...Option) (*Engine[S, A, K], error) {
	return New[S, A, K](Greedy(), h, opts...)
}

// Strategy returns the engine's strategy.
func (e *Engine[S, A, K]) Strategy() Strategy {
	return e.strategy
}

// TotalExpansions reports expansions summed over every Search call made
// on this engine. Diagnostic only.
func (e *Engine[S, A, K]) TotalExpansions() int64 {
	return e.totalExpansions.Load()
}

// Search looks for a path from initial to a goal of p.
//
// Returns:
//   - nil error with Result.Found == true on success
//   - ErrNoSolution when the reachable space holds no goal
//   - ErrMaxExpansionsExceeded when the expansion budget is spent
//   - ctx.Err() when ctx is cancelled (checked once per iteration)
//   - ErrInvalidStepCost for a negative or NaN step cost
//   - *SearchError with CodeSuccessorFailed when p.Successors fails
//
// Counters in the Result are valid on every path. When a store is
// configured, a failure to record the run is joined to the returned error
// as a *SearchError with CodeStoreFailed.
func (e *Engine[S, A, K]) Search(ctx context.Context, p Problem[S, A, K], initial S) (Result[S, A], error) {
	if err := p.Validate(); err != nil {
		return Result[S, A]{Strategy: e.strategy.Name, Weight: e.strategy.Weight}, err
	}

	started := time.Now()
	res := Result[S, A]{
		RunID:    uuid.NewString(),
		Strategy: e.strategy.Name,
		Weight:   e.strategy.Weight,
	}

	err := e.run(ctx, p, initial, &res)
	res.Duration = time.Since(started)
	e.totalExpansions.Add(int64(res.Expansions))

	outcome := outcomeOf(err)
	if err != nil && outcome != OutcomeNoSolution {
		e.emit(emit.Event{
			RunID: res.RunID,
			Step:  res.Expansions,
			Msg:   emit.MsgSearchError,
			Meta:  map[string]interface{}{"error": err.Error()},
		})
	}
	if e.metrics != nil {
		e.metrics.RecordSearch(e.strategy.Name, outcome, res.Expansions, res.DuplicatesSkipped, res.PeakFrontier, res.Duration)
	}

	e.logger.Debug("search finished",
		"run_id", res.RunID,
		"problem", p.Name,
		"strategy", e.strategy.Name,
		"outcome", outcome,
		"expansions", res.Expansions,
		"generated", res.Generated,
		"duration", res.Duration,
	)

	if e.store != nil {
		if serr := e.record(ctx, p.Name, res, started); serr != nil {
			e.logger.Warn("failed to record search run", "run_id", res.RunID, "error", serr)
			err = errors.Join(err, serr)
		}
	}
	return res, err
}

func (e *Engine[S, A, K]) run(ctx context.Context, p Problem[S, A, K], initial S, res *Result[S, A]) error {
	tree := NewTree[S, A]()
	open := newFrontier()
	explored := newExploredSet[K]()
	defer func() { res.PeakFrontier = open.peak }()

	// keys[id] is the canonical key of node id, computed once when the node
	// is created and reused at pop.
	root := tree.Root(initial)
	keys := []K{p.Key(initial)}
	open.push(root, e.strategy.Priority(0, e.heuristic(initial)))
	res.Generated = 1

	if e.emitting {
		e.emit(emit.Event{
			RunID: res.RunID,
			Msg:   emit.MsgSearchStart,
			Key:   fmt.Sprint(keys[root]),
			Meta: map[string]interface{}{
				"strategy": e.strategy.Name,
				"problem":  p.Name,
			},
		})
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, ok := open.pop()
		if !ok {
			e.emit(emit.Event{
				RunID: res.RunID,
				Step:  res.Expansions,
				Msg:   emit.MsgNoSolution,
				Meta:  map[string]interface{}{"explored": explored.len()},
			})
			return ErrNoSolution
		}

		node := tree.Node(entry.id)
		key := keys[entry.id]

		if explored.contains(key) {
			res.DuplicatesSkipped++
			if e.emitting {
				e.emit(emit.Event{
					RunID: res.RunID,
					Step:  res.Expansions,
					Key:   fmt.Sprint(key),
					Msg:   emit.MsgDuplicateSkipped,
					Meta:  map[string]interface{}{"g": node.PathCost, "f": entry.priority},
				})
			}
			continue
		}

		if p.GoalTest(node.State) {
			res.Found = true
			res.Actions = tree.Actions(entry.id)
			res.States = tree.States(entry.id)
			res.Cost = node.PathCost
			res.Depth = node.Depth
			if e.emitting {
				e.emit(emit.Event{
					RunID: res.RunID,
					Step:  res.Expansions,
					Key:   fmt.Sprint(key),
					Msg:   emit.MsgGoalReached,
					Meta:  map[string]interface{}{"g": node.PathCost, "depth": node.Depth},
				})
			}
			return nil
		}

		if e.maxExpansions > 0 && res.Expansions >= e.maxExpansions {
			return fmt.Errorf("%w: limit %d", ErrMaxExpansionsExceeded, e.maxExpansions)
		}

		explored.add(key)
		res.Expansions++

		successors, err := p.Successors(node.State)
		if err != nil {
			return &SearchError{
				Message: fmt.Sprintf("successors of %v", key),
				Code:    CodeSuccessorFailed,
				Cause:   err,
			}
		}

		pushed := 0
		for _, s := range successors {
			if s.Cost < 0 || math.IsNaN(s.Cost) {
				return fmt.Errorf("%w: %v for action %v from %v", ErrInvalidStepCost, s.Cost, s.Action, key)
			}
			childKey := p.Key(s.State)
			if explored.contains(childKey) {
				continue
			}
			child := tree.Child(entry.id, s.Action, s.State, s.Cost)
			keys = append(keys, childKey)
			g := tree.Node(child).PathCost
			open.push(child, e.strategy.Priority(g, e.heuristic(s.State)))
			pushed++
		}
		res.Generated += pushed

		if e.emitting {
			e.emit(emit.Event{
				RunID: res.RunID,
				Step:  res.Expansions,
				Key:   fmt.Sprint(key),
				Msg:   emit.MsgNodeExpanded,
				Meta: map[string]interface{}{
					"g":        node.PathCost,
					"f":        entry.priority,
					"depth":    node.Depth,
					"pushed":   pushed,
					"frontier": open.len(),
				},
			})
		}
	}
}

func (e *Engine[S, A, K]) emit(event emit.Event) {
	if e.emitting {
		e.emitter.Emit(event)
	}
}

// record writes the run summary. It ignores ctx cancellation so that a
// cancelled search still leaves a ledger entry.
func (e *Engine[S, A, K]) record(ctx context.Context, problem string, res Result[S, A], started time.Time) error {
	var actions []string
	if res.Found {
		actions = make([]string, len(res.Actions))
		for i, a := range res.Actions {
			actions[i] = fmt.Sprint(a)
		}
	}

	rec := store.RunRecord{
		RunID:      res.RunID,
		Problem:    problem,
		Strategy:   res.Strategy,
		Weight:     res.Weight,
		Found:      res.Found,
		Cost:       res.Cost,
		Depth:      res.Depth,
		Expansions: res.Expansions,
		Generated:  res.Generated,
		Actions:    actions,
		StartedAt:  started.UTC(),
		DurationMS: res.Duration.Milliseconds(),
	}
	if err := e.store.SaveRun(context.WithoutCancel(ctx), rec); err != nil {
		return &SearchError{Message: "record run " + res.RunID, Code: CodeStoreFailed, Cause: err}
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, ErrNoSolution):
		return OutcomeNoSolution
	case errors.Is(err, ErrMaxExpansionsExceeded):
		return OutcomeBudgetExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	}
	return OutcomeError
}
