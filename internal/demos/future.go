package demos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/b97tsk/async"

	"github.com/abrunet/asynclab/internal/sequencer"
)

// futureOutcome is the value a future resolves to. Exactly one of value
// and errMsg is meaningful once done is set.
type futureOutcome struct {
	value  string
	errMsg string
	done   bool
}

// resolveFuture runs one promise/consumer round on a cooperative
// single-threaded executor. A coroutine watches the future state and
// parks itself until a producer goroutine resolves it after delay d.
func resolveFuture(ctx context.Context, d time.Duration, resolve func() futureOutcome) (futureOutcome, error) {
	var ex async.Executor
	ex.Autorun(ex.Run)

	fut := async.NewState(futureOutcome{})
	settled := make(chan futureOutcome, 1)

	ex.Spawn(func(co *async.Coroutine) async.Result {
		co.Watch(fut)
		o := fut.Get()
		if !o.done {
			return co.Yield()
		}
		settled <- o
		return co.End()
	})

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return
		}
		ex.Spawn(async.Do(func() { fut.Set(resolve()) }))
	}()

	select {
	case o := <-settled:
		return o, nil
	case <-ctx.Done():
		return futureOutcome{}, ctx.Err()
	}
}

// futureResolution demonstrates both ends of a future: a producer that
// fulfills it with a value, then one that rejects it. The rejection is
// caught and reported rather than escaping the unit.
func futureResolution(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		fmt.Fprintln(p.Out, "Awaiting a future that will be fulfilled")
		o, err := resolveFuture(ctx, p.delay(1), func() futureOutcome {
			return futureOutcome{value: "operation successful", done: true}
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Out, "Future resolved: %s\n", o.value)

		fmt.Fprintln(p.Out, "Awaiting a future that will be rejected")
		o, err = resolveFuture(ctx, p.delay(1), func() futureOutcome {
			return futureOutcome{errMsg: "boom", done: true}
		})
		if err != nil {
			return err
		}
		if o.errMsg != "" {
			fmt.Fprintf(p.Out, "Future rejected, error handled: %s\n",
				errors.New(o.errMsg))
		}
		return nil
	}
}
