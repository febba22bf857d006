package demos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURLs are the endpoints fetched by the HTTP demonstration units
// when the caller does not supply its own list.
var DefaultURLs = []string{
	"https://example.com",
	"https://example.org",
	"https://httpbin.org/get",
}

// Fetcher retrieves the body of a URL. The HTTP units depend on this
// interface so tests can substitute an in-memory implementation with
// controlled latencies.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the production Fetcher backed by net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded request timeout so a
// stalled endpoint cannot hang a demonstration unit indefinitely.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch performs a GET and returns the response body as a string.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", url, err)
	}
	return string(body), nil
}

// Params carries the shared knobs the unit constructors close over.
type Params struct {
	// BaseDelay is the unit of simulated work. Every sleep in the
	// catalog is an integer multiple of it.
	BaseDelay time.Duration

	// Fetcher serves the HTTP units.
	Fetcher Fetcher

	// URLs fetched by the HTTP units.
	URLs []string

	// Dir is the scratch directory used by the file-reading units.
	Dir string

	// Out receives the narrative output of the units themselves,
	// distinct from the sequencer's own reporting.
	Out io.Writer
}

func (p Params) withDefaults() Params {
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.Fetcher == nil {
		p.Fetcher = NewHTTPFetcher()
	}
	if len(p.URLs) == 0 {
		p.URLs = DefaultURLs
	}
	if p.Out == nil {
		p.Out = io.Discard
	}
	return p
}

// delay scales BaseDelay by n units of simulated work.
func (p Params) delay(n int) time.Duration {
	return time.Duration(n) * p.BaseDelay
}

// sleep blocks for d or until the context is canceled.
func (p Params) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
