package sequencer

import (
	"io"
	"time"
)

// Presenter defines the interface for displaying a run's progress and
// outcome. This interface decouples the sequencing logic from the
// presentation layer, so the same run loop serves the plain CLI, quiet mode
// and the TUI dashboard.
type Presenter interface {
	// PresentRunHeader displays the opening banner before any unit runs.
	PresentRunHeader(total int, out io.Writer)

	// PresentUnitHeader displays a unit's title and explanation just before
	// its action is invoked.
	PresentUnitHeader(u Unit, out io.Writer)

	// PresentUnitResult displays a unit's status/timing line right after its
	// action returned or failed.
	PresentUnitResult(r RunResult, out io.Writer)

	// PresentSummary displays the final table of unit name, elapsed time and
	// success/failure after every unit has been attempted.
	PresentSummary(results []RunResult, out io.Writer)
}

// NullPresenter is a no-op implementation of Presenter.
// Useful for quiet mode and testing.
type NullPresenter struct{}

func (NullPresenter) PresentRunHeader(int, io.Writer)        {}
func (NullPresenter) PresentUnitHeader(Unit, io.Writer)      {}
func (NullPresenter) PresentUnitResult(RunResult, io.Writer) {}
func (NullPresenter) PresentSummary([]RunResult, io.Writer)  {}

// Observer receives a notification for every finished unit execution.
// The metrics layer implements this to feed Prometheus collectors without
// the sequencer depending on it.
type Observer interface {
	// ObserveUnitRun records one finished unit execution.
	ObserveUnitRun(unit string, d time.Duration, err error)
}

// ObserverFunc is a function adapter that implements Observer.
// This allows passing a function directly where an Observer is expected.
type ObserverFunc func(unit string, d time.Duration, err error)

// ObserveUnitRun calls the underlying function.
func (f ObserverFunc) ObserveUnitRun(unit string, d time.Duration, err error) {
	f(unit, d, err)
}

// NullObserver is a no-op implementation of Observer.
type NullObserver struct{}

// ObserveUnitRun discards the observation.
func (NullObserver) ObserveUnitRun(string, time.Duration, error) {}
