package demos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
)

// sampleFiles is the fixture set the file-reading units operate on. The
// units create them on first use so a run needs no manual setup.
var sampleFiles = map[string]string{
	"letter.txt": "Dear reader,\n\nConcurrency is not parallelism, but they are good friends.\n",
	"recipe.txt": "1. Start the water.\n2. While it heats, chop the vegetables.\n3. Combine.\n",
	"log.txt":    "09:00 started\n09:01 waiting on io\n09:03 done\n",
}

// seedFiles materializes the fixture set under dir and returns the file
// paths in a stable order.
func seedFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sample directory: %w", err)
	}

	names := []string{"letter.txt", "recipe.txt", "log.txt"}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(sampleFiles[name]), 0o644); err != nil {
			return nil, fmt.Errorf("writing sample file %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// readFilesSequential reads each sample file in turn.
func readFilesSequential(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		paths, err := seedFiles(p.Dir)
		if err != nil {
			return err
		}

		start := time.Now()
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			fmt.Fprintf(p.Out, "%s: %d bytes\n", filepath.Base(path), len(data))
		}

		fmt.Fprintf(p.Out, "Read %d files sequentially in %s\n",
			len(paths), format.FormatSeconds(time.Since(start)))
		return nil
	}
}

// readFilesConcurrent reads the sample files with one goroutine each.
// For a handful of small local files the win is modest; the shape of the
// code is the point.
func readFilesConcurrent(p Params) sequencer.Action {
	return func(ctx context.Context) error {
		paths, err := seedFiles(p.Dir)
		if err != nil {
			return err
		}

		start := time.Now()
		sizes := make([]int, len(paths))
		g, ctx := errgroup.WithContext(ctx)
		for i, path := range paths {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				sizes[i] = len(data)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, path := range paths {
			fmt.Fprintf(p.Out, "%s: %d bytes\n", filepath.Base(path), sizes[i])
		}
		fmt.Fprintf(p.Out, "Read %d files concurrently in %s\n",
			len(paths), format.FormatSeconds(time.Since(start)))
		return nil
	}
}
