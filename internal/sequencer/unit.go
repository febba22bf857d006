package sequencer

import (
	"context"
	"fmt"
	"time"
)

// Action is the invocable body of a demonstration unit. The context carries
// run-wide cancellation; the sequencer itself imposes no per-unit deadline.
type Action func(ctx context.Context) error

// Unit describes one self-contained demonstration of a concurrency pattern.
// Units are built once at startup and never mutated afterwards.
type Unit struct {
	// Ordinal is the 1-based position of the unit in the catalog.
	Ordinal int
	// Name is the short machine-friendly identifier (e.g. "fetch-concurrent").
	Name string
	// Title is the human-readable headline printed before the unit runs.
	Title string
	// Explanation is free-text display material describing what the unit
	// demonstrates and what behavior to expect.
	Explanation string
	// Action is the zero-argument invocable body of the demonstration.
	Action Action
}

// ID returns the display identifier combining ordinal and name, e.g.
// "05-fetch-concurrent".
func (u Unit) ID() string {
	return fmt.Sprintf("%02d-%s", u.Ordinal, u.Name)
}

// RunResult records the outcome of a single unit execution. Exactly one
// RunResult exists per unit per run, held in catalog order by the sequencer.
type RunResult struct {
	// Unit is the demonstration this result belongs to.
	Unit Unit
	// Duration is the wall-clock time between invocation and return/failure.
	Duration time.Duration
	// Err is nil on success, or the error captured from the unit's action
	// (including recovered panics).
	Err error
}

// Success reports whether the unit completed as intended.
func (r RunResult) Success() bool { return r.Err == nil }

// ErrorMessage returns the captured failure message, or "" on success.
func (r RunResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
