package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/logging"
	"github.com/abrunet/asynclab/internal/ui"
)

// DemoConfig holds the knobs for the queue demonstration run.
type DemoConfig struct {
	Workers   int
	Buffer    int
	JobLimit  time.Duration
	BaseDelay time.Duration
	// DBPath is the results database location; ":memory:" keeps the
	// run ephemeral.
	DBPath string
}

// demoHandler interprets the demonstration job names: "process" sleeps
// one unit and succeeds, "flaky" fails, "slow" does 20 units of work so
// it overruns the job limit (15 units at the default configuration).
func demoHandler(baseDelay time.Duration) Handler {
	return func(ctx context.Context, job Job) (string, error) {
		work := baseDelay
		switch job.Name {
		case "flaky":
			return "", errors.New("downstream dependency unavailable")
		case "slow":
			work = 20 * baseDelay
		}

		timer := time.NewTimer(work)
		defer timer.Stop()
		select {
		case <-timer.C:
			return fmt.Sprintf("processed %s", job.Payload), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// demoJobs is the fixed workload: more jobs than workers so queueing is
// visible, plus one failure and one job that blows its time limit.
func demoJobs() []Job {
	jobs := make([]Job, 0, 8)
	for i := 1; i <= 6; i++ {
		jobs = append(jobs, NewJob("process", fmt.Sprintf("item-%d", i)))
	}
	jobs = append(jobs, NewJob("flaky", "item-7"))
	jobs = append(jobs, NewJob("slow", "item-8"))
	return jobs
}

// RunDemo drives the full producer/worker-pool round trip and prints the
// persisted outcomes.
func RunDemo(ctx context.Context, cfg DemoConfig, log logging.Logger, out io.Writer) error {
	store, err := NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	broker := NewBroker(cfg.Buffer)
	pool := NewPool(broker, store, demoHandler(cfg.BaseDelay), log, cfg.Workers, cfg.JobLimit)

	jobs := demoJobs()
	fmt.Fprintf(out, "%s=== Queue Demo ===%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Submitting %d jobs to %d workers (buffer %d, job limit %s)\n",
		len(jobs), cfg.Workers, cfg.Buffer, cfg.JobLimit)

	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()

	start := time.Now()
	for _, job := range jobs {
		if err := broker.Submit(ctx, job); err != nil {
			broker.Close()
			<-done
			return err
		}
	}
	broker.Close()

	if err := <-done; err != nil {
		return err
	}
	elapsed := time.Since(start)

	results, err := store.Results(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n--- Job Outcomes ---\n")
	for _, r := range results {
		var status string
		switch r.State {
		case StateSucceeded:
			status = fmt.Sprintf("%s✅ %s%s", ui.ColorGreen(), r.Output, ui.ColorReset())
		case StateTimedOut:
			status = fmt.Sprintf("%s⏱ timed out%s", ui.ColorYellow(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s❌ %s%s", ui.ColorRed(), r.ErrorMessage, ui.ColorReset())
		}
		fmt.Fprintf(out, "%-10s %-10s %s\n",
			r.Name, format.FormatExecutionDuration(r.Duration), status)
	}

	counts, err := store.CountByState(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d succeeded, %d failed, %d timed out in %s\n",
		counts[StateSucceeded], counts[StateFailed], counts[StateTimedOut],
		format.FormatSeconds(elapsed))
	return nil
}
