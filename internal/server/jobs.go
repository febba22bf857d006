package server

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/logging"
)

// JobRunner executes fire-and-forget work on a bounded goroutine pool.
// Handlers submit jobs after responding 202; Wait drains them during
// shutdown so accepted work is never abandoned.
type JobRunner struct {
	g       *errgroup.Group
	ctx     context.Context
	log     logging.Logger
	metrics *Metrics

	pending atomic.Int64
}

// NewJobRunner builds a runner whose jobs inherit ctx and run at most
// limit at a time.
func NewJobRunner(ctx context.Context, limit int, log logging.Logger, metrics *Metrics) *JobRunner {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &JobRunner{g: g, ctx: ctx, log: log, metrics: metrics}
}

// Submit schedules fn on the pool. A failing job is logged and counted
// but never cancels its siblings.
func (jr *JobRunner) Submit(name string, fn func(ctx context.Context) error) {
	jr.pending.Add(1)
	jr.g.Go(func() error {
		defer jr.pending.Add(-1)

		start := time.Now()
		err := fn(jr.ctx)
		if jr.metrics != nil {
			jr.metrics.ObserveJob(name, time.Since(start), err)
		}
		if err != nil {
			jr.log.Error("background job failed", err, logging.String("job", name))
			return nil
		}
		jr.log.Debug("background job finished", logging.String("job", name))
		return nil
	})
}

// Pending returns the number of jobs submitted but not yet finished.
func (jr *JobRunner) Pending() int64 {
	return jr.pending.Load()
}

// Wait blocks until every submitted job has finished.
func (jr *JobRunner) Wait() {
	_ = jr.g.Wait()
}
