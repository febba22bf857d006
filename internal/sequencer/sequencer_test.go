package sequencer

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

// recordingObserver captures observer callbacks for assertions.
type recordingObserver struct {
	mu    sync.Mutex
	units []string
	errs  []error
}

func (o *recordingObserver) ObserveUnitRun(unit string, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.units = append(o.units, unit)
	o.errs = append(o.errs, err)
}

func unitWithAction(ordinal int, name string, action Action) Unit {
	return Unit{
		Ordinal:     ordinal,
		Name:        name,
		Title:       name,
		Explanation: "test unit",
		Action:      action,
	}
}

func TestRunAllProducesOneResultPerUnitInOrder(t *testing.T) {
	t.Parallel()

	var invoked []string
	names := []string{"first", "second", "third", "fourth"}
	units := make([]Unit, 0, len(names))
	for i, name := range names {
		name := name
		units = append(units, unitWithAction(i+1, name, func(ctx context.Context) error {
			invoked = append(invoked, name)
			return nil
		}))
	}

	results := New(units).RunAll(context.Background(), io.Discard)

	if len(results) != len(units) {
		t.Fatalf("expected %d results, got %d", len(units), len(results))
	}
	for i, res := range results {
		if res.Unit.Name != names[i] {
			t.Errorf("result %d is for unit %q, want %q", i, res.Unit.Name, names[i])
		}
		if !res.Success() {
			t.Errorf("unit %q should succeed, got error %v", res.Unit.Name, res.Err)
		}
	}
	for i, name := range invoked {
		if name != names[i] {
			t.Errorf("invocation order: position %d was %q, want %q", i, name, names[i])
		}
	}
}

func TestRunAllContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		failing Action
		wantMsg string
	}{
		{
			name:    "returned error",
			failing: func(ctx context.Context) error { return errors.New("boom") },
			wantMsg: "boom",
		},
		{
			name:    "panic recovered as failure",
			failing: func(ctx context.Context) error { panic("demo exploded") },
			wantMsg: "panic: demo exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nextRan := false
			units := []Unit{
				unitWithAction(1, "failing", tt.failing),
				unitWithAction(2, "subsequent", func(ctx context.Context) error {
					nextRan = true
					return nil
				}),
			}

			results := New(units).RunAll(context.Background(), io.Discard)

			if len(results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(results))
			}
			if results[0].Success() {
				t.Error("failing unit should be recorded as failure")
			}
			if got := results[0].ErrorMessage(); got != tt.wantMsg {
				t.Errorf("captured message = %q, want %q", got, tt.wantMsg)
			}
			if !nextRan {
				t.Error("a unit failure must not prevent subsequent units from running")
			}
			if !results[1].Success() {
				t.Errorf("subsequent unit should succeed, got %v", results[1].Err)
			}
		})
	}
}

func TestRunAllRecordsElapsedWallClock(t *testing.T) {
	t.Parallel()

	// One unit sleeping approximately 2 time-units; the scale is shrunk so
	// the test stays fast while preserving the ratio being asserted.
	const timeUnit = 50 * time.Millisecond

	units := []Unit{
		unitWithAction(1, "sleeper", func(ctx context.Context) error {
			time.Sleep(2 * timeUnit)
			return nil
		}),
		unitWithAction(2, "instant", func(ctx context.Context) error { return nil }),
	}

	results := New(units).RunAll(context.Background(), io.Discard)

	sleeper := results[0]
	if !sleeper.Success() {
		t.Fatalf("sleeper should succeed, got %v", sleeper.Err)
	}
	if sleeper.Duration < 2*timeUnit {
		t.Errorf("sleeper duration %v should be at least %v", sleeper.Duration, 2*timeUnit)
	}
	if sleeper.Duration > 2*timeUnit+timeUnit {
		t.Errorf("sleeper duration %v exceeds tolerance above %v", sleeper.Duration, 2*timeUnit)
	}

	for _, res := range results {
		if res.Duration < 0 {
			t.Errorf("unit %q has negative duration %v", res.Unit.Name, res.Duration)
		}
	}
}

func TestRunAllDeterministicActionSucceedsTwice(t *testing.T) {
	t.Parallel()

	unit := unitWithAction(1, "deterministic", func(ctx context.Context) error {
		total := 0
		for i := 0; i < 1000; i++ {
			total += i
		}
		if total != 499500 {
			return errors.New("arithmetic drift")
		}
		return nil
	})

	seq := New([]Unit{unit})
	first := seq.RunAll(context.Background(), io.Discard)
	second := seq.RunAll(context.Background(), io.Discard)

	if !first[0].Success() || !second[0].Success() {
		t.Fatal("deterministic side-effect-free unit should succeed on every run")
	}
}

func TestRunAllNotifiesObserver(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	units := []Unit{
		unitWithAction(1, "ok", func(ctx context.Context) error { return nil }),
		unitWithAction(2, "bad", func(ctx context.Context) error { return errors.New("boom") }),
	}

	New(units, WithObserver(obs)).RunAll(context.Background(), io.Discard)

	if len(obs.units) != 2 {
		t.Fatalf("observer should see 2 runs, got %d", len(obs.units))
	}
	if obs.units[0] != "ok" || obs.units[1] != "bad" {
		t.Errorf("observer order = %v", obs.units)
	}
	if obs.errs[0] != nil {
		t.Errorf("first observation should carry nil error, got %v", obs.errs[0])
	}
	if obs.errs[1] == nil {
		t.Error("second observation should carry the failure")
	}
}

func TestRunAllEmptyCatalog(t *testing.T) {
	t.Parallel()

	results := New(nil).RunAll(context.Background(), io.Discard)
	if len(results) != 0 {
		t.Errorf("empty catalog should yield no results, got %d", len(results))
	}
}

func TestUnitsReturnsCopy(t *testing.T) {
	t.Parallel()

	units := []Unit{unitWithAction(1, "only", func(ctx context.Context) error { return nil })}
	seq := New(units)

	got := seq.Units()
	got[0].Name = "mutated"

	if seq.Units()[0].Name != "only" {
		t.Error("mutating the returned slice must not affect the sequencer's catalog")
	}
}

func TestUnitID(t *testing.T) {
	t.Parallel()

	u := Unit{Ordinal: 5, Name: "fetch-concurrent"}
	if got := u.ID(); got != "05-fetch-concurrent" {
		t.Errorf("ID() = %q, want %q", got, "05-fetch-concurrent")
	}
}

func TestObserverFuncAdapter(t *testing.T) {
	t.Parallel()

	var seen string
	var obs Observer = ObserverFunc(func(unit string, d time.Duration, err error) {
		seen = unit
	})
	obs.ObserveUnitRun("adapter", time.Millisecond, nil)

	if seen != "adapter" {
		t.Errorf("ObserverFunc should delegate, got %q", seen)
	}
}
