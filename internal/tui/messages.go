package tui

import (
	"time"

	"github.com/abrunet/asynclab/internal/sequencer"
)

// UnitStartedMsg marks a unit as running.
type UnitStartedMsg struct {
	Ordinal int
}

// UnitFinishedMsg delivers the outcome of one unit.
type UnitFinishedMsg struct {
	Ordinal int
	Result  sequencer.RunResult
}

// RunDoneMsg signals that every unit has been attempted.
type RunDoneMsg struct {
	Results []sequencer.RunResult
}

// TickMsg drives the elapsed-time display.
type TickMsg time.Time

// ContextCancelledMsg reports that the run context ended.
type ContextCancelledMsg struct {
	Err error
}
