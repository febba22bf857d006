package demos

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
)

// fetchSequential downloads each URL one after the other. Total time is
// the sum of the individual round trips.
func fetchSequential(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		for _, url := range p.URLs {
			body, err := p.Fetcher.Fetch(ctx, url)
			if err != nil {
				return err
			}
			fmt.Fprintf(p.Out, "%s: %d bytes\n", url, len(body))
		}

		fmt.Fprintf(p.Out, "Fetched %d URLs sequentially in %s\n",
			len(p.URLs), format.FormatSeconds(time.Since(start)))
		return nil
	}
}

// fetchConcurrent downloads every URL at once. Total time approaches the
// slowest single round trip. Results keep the input order regardless of
// completion order.
func fetchConcurrent(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		start := time.Now()

		bodies := make([]string, len(p.URLs))
		g, ctx := errgroup.WithContext(ctx)
		for i, url := range p.URLs {
			g.Go(func() error {
				body, err := p.Fetcher.Fetch(ctx, url)
				if err != nil {
					return err
				}
				bodies[i] = body
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, url := range p.URLs {
			fmt.Fprintf(p.Out, "%s: %d bytes\n", url, len(bodies[i]))
		}
		fmt.Fprintf(p.Out, "Fetched %d URLs concurrently in %s\n",
			len(p.URLs), format.FormatSeconds(time.Since(start)))
		return nil
	}
}
