package queue

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/logging"
)

// Handler executes one job and returns its output.
type Handler func(ctx context.Context, job Job) (string, error)

// Pool consumes jobs from a broker with a fixed number of workers. Every
// job runs under a hard per-job time limit; a job that overruns it is
// recorded as timed out and the worker moves on.
type Pool struct {
	broker   *Broker
	store    *Store
	handler  Handler
	log      logging.Logger
	workers  int
	jobLimit time.Duration
}

// NewPool wires a worker pool to a broker, result store and handler.
func NewPool(broker *Broker, store *Store, handler Handler, log logging.Logger, workers int, jobLimit time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		broker:   broker,
		store:    store,
		handler:  handler,
		log:      log,
		workers:  workers,
		jobLimit: jobLimit,
	}
}

// Run processes jobs until the broker closes or ctx is canceled. Job
// failures are recorded, not returned; the error reports infrastructure
// problems such as a failing result store.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		worker := i + 1
		g.Go(func() error {
			for {
				select {
				case job, ok := <-p.broker.Jobs():
					if !ok {
						return nil
					}
					if err := p.runJob(ctx, worker, job); err != nil {
						return err
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}
	return g.Wait()
}

func (p *Pool) runJob(ctx context.Context, worker int, job Job) error {
	jobCtx, cancel := context.WithTimeout(ctx, p.jobLimit)
	defer cancel()

	start := time.Now()
	output, err := p.handler(jobCtx, job)
	elapsed := time.Since(start)

	result := Result{
		JobID:      job.ID,
		Name:       job.Name,
		State:      StateSucceeded,
		Output:     output,
		Duration:   elapsed,
		FinishedAt: time.Now(),
	}
	switch {
	case err == nil:
		p.log.Debug("job finished",
			logging.String("job", job.Name),
			logging.Int("worker", worker))
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		result.State = StateTimedOut
		result.ErrorMessage = err.Error()
		p.log.Warn("job exceeded its time limit",
			logging.String("job", job.Name),
			logging.Int("worker", worker))
	default:
		result.State = StateFailed
		result.ErrorMessage = err.Error()
		p.log.Error("job failed", err,
			logging.String("job", job.Name),
			logging.Int("worker", worker))
	}

	if err := p.store.SaveResult(ctx, result); err != nil {
		return err
	}
	return nil
}
