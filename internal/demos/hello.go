package demos

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
)

// sequentialHello is the baseline: two blocking sleeps back to back,
// total time is the sum of both.
func sequentialHello(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		fmt.Fprintln(p.Out, "Before the first greeting")
		if err := p.sleep(ctx, p.delay(2)); err != nil {
			return err
		}
		fmt.Fprintln(p.Out, "Hello, blocking world")

		if err := p.sleep(ctx, p.delay(1)); err != nil {
			return err
		}
		fmt.Fprintln(p.Out, "Goodbye, blocking world")

		fmt.Fprintf(p.Out, "Total: %s\n", format.FormatSeconds(time.Since(start)))
		return nil
	}
}

// goroutineHello moves the greeting into a goroutine. The caller keeps
// working while the greeting sleeps, then waits for it to finish.
func goroutineHello(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		done := make(chan error, 1)
		go func() {
			if err := p.sleep(ctx, p.delay(2)); err != nil {
				done <- err
				return
			}
			fmt.Fprintln(p.Out, "Hello from the goroutine")
			done <- nil
		}()

		fmt.Fprintln(p.Out, "Main keeps going while the greeting sleeps")
		if err := p.sleep(ctx, p.delay(1)); err != nil {
			return err
		}
		fmt.Fprintln(p.Out, "Main is done with its own work")

		select {
		case err := <-done:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		fmt.Fprintf(p.Out, "Total: %s\n", format.FormatSeconds(time.Since(start)))
		return nil
	}
}

// concurrentHello runs both greetings at once and waits for the group.
// Total time collapses to the longest single sleep.
func concurrentHello(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := p.sleep(ctx, p.delay(2)); err != nil {
				return err
			}
			fmt.Fprintln(p.Out, "Hello after two units of work")
			return nil
		})
		g.Go(func() error {
			if err := p.sleep(ctx, p.delay(1)); err != nil {
				return err
			}
			fmt.Fprintln(p.Out, "Hello after one unit of work")
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintf(p.Out, "Total: %s (the longest sleep, not the sum)\n",
			format.FormatSeconds(time.Since(start)))
		return nil
	}
}
