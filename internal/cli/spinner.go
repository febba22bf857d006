package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

// ProgressRefreshRate is the spinner animation interval. 200ms keeps the
// terminal calm while a unit sleeps through its simulated work.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner abstracts the terminal spinner so the presenter can be tested
// without animating a real one.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}
