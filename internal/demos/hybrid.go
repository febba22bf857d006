package demos

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
)

// blockingChecksum simulates CPU-bound work that would stall a
// cooperative scheduler: it never yields until the deadline passes.
func blockingChecksum(rounds int, d time.Duration) uint64 {
	deadline := time.Now().Add(d)
	var sum uint64
	for i := 0; time.Now().Before(deadline); i++ {
		sum += uint64(i * rounds)
	}
	return sum
}

// hybridOffload ships a blocking computation off to its own goroutine
// while lightweight tasks keep making progress beside it. The blocking
// call costs two units of work but the light tasks finish inside that
// window, so the total stays close to the blocking call alone.
func hybridOffload(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			fmt.Fprintln(p.Out, "Offloading the blocking computation")
			sum := blockingChecksum(7, p.delay(2))
			fmt.Fprintf(p.Out, "Blocking computation finished (checksum %d)\n", sum%1000)
			return nil
		})

		for i := 1; i <= 3; i++ {
			g.Go(func() error {
				if err := p.sleep(ctx, p.delay(1)); err != nil {
					return err
				}
				fmt.Fprintf(p.Out, "Light task %d finished while the heavy one ran\n", i)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintf(p.Out, "Total: %s (light tasks hid inside the blocking window)\n",
			format.FormatSeconds(time.Since(start)))
		return nil
	}
}
