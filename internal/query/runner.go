// Package query evaluates pair lists against a loaded vector space.
package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/wordsim/internal/models"
)

// Scorer is the part of a vector space the runner needs.
type Scorer interface {
	Similarity(a, b string) (float64, error)
	Distance(a, b string) (float64, error)
	Len() int
	Dim() int
}

// Runner evaluates pairs one at a time. A failing pair is recorded in its
// Result and does not stop the pairs after it.
type Runner struct {
	logger *zap.Logger
	now    func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a logger for per-query failures and run summaries.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every pair in order and returns a Run with a fresh ID.
// ModelPath is left for the caller. The only error is ctx being done,
// in which case the partial run is returned alongside it.
func (r *Runner) Run(ctx context.Context, space Scorer, pairs []models.Pair) (*models.Run, error) {
	start := r.now()
	run := &models.Run{
		ID:         uuid.NewString(),
		VocabSize:  space.Len(),
		Dimensions: space.Dim(),
		CreatedAt:  start,
		Results:    make([]*models.Result, 0, len(pairs)),
	}
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			run.QueryTime = r.now().Sub(start).Milliseconds()
			return run, err
		}
		run.Results = append(run.Results, r.score(space, pair))
	}
	run.QueryTime = r.now().Sub(start).Milliseconds()
	r.logger.Debug("run finished",
		zap.String("run_id", run.ID),
		zap.Int("queries", len(run.Results)),
		zap.Int("failed", run.Failed()))
	return run, nil
}

func (r *Runner) score(space Scorer, pair models.Pair) *models.Result {
	res := &models.Result{Pair: pair}
	if err := res.Pair.Validate(); err != nil {
		res.Error = err.Error()
		r.logger.Warn("invalid query", zap.String("label", pair.Label()), zap.Error(err))
		return res
	}
	var err error
	switch res.Pair.Kind {
	case models.KindDistance:
		res.Value, err = space.Distance(pair.A, pair.B)
	default:
		res.Value, err = space.Similarity(pair.A, pair.B)
	}
	if err != nil {
		res.Value = 0
		res.Error = err.Error()
		r.logger.Warn("query failed",
			zap.String("kind", string(res.Pair.Kind)),
			zap.String("a", pair.A),
			zap.String("b", pair.B),
			zap.Error(err))
	}
	return res
}
