package sequencer

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abrunet/asynclab/internal/logging"
)

// tracerName identifies the sequencer's spans to the OpenTelemetry provider.
const tracerName = "asynclab/sequencer"

// Sequencer owns an ordered unit catalog and drives it to completion.
// The zero value is not usable; construct with New.
type Sequencer struct {
	units     []Unit
	presenter Presenter
	observer  Observer
	log       logging.Logger
	tracer    trace.Tracer
}

// Option configures a Sequencer during construction.
type Option func(*Sequencer)

// WithPresenter sets the presentation layer for the run.
func WithPresenter(p Presenter) Option {
	return func(s *Sequencer) { s.presenter = p }
}

// WithObserver sets the per-unit execution observer (e.g. metrics).
func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.observer = o }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Sequencer) { s.log = l }
}

// New creates a Sequencer owning a copy of the given ordered unit catalog.
// Copying makes the catalog immutable for the sequencer's lifetime even if
// the caller keeps mutating its slice.
func New(units []Unit, opts ...Option) *Sequencer {
	s := &Sequencer{
		units:     slices.Clone(units),
		presenter: NullPresenter{},
		observer:  NullObserver{},
		log:       logging.NopLogger{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Units returns a copy of the catalog in run order.
func (s *Sequencer) Units() []Unit {
	return slices.Clone(s.units)
}

// RunAll drives every unit in catalog order, strictly one at a time.
//
// For each unit it presents the title/explanation, invokes the action,
// records the wall-clock duration, and presents the outcome. A unit's
// failure (a returned error or a panic) is captured in its
// RunResult and never interrupts the sequence. After the last unit, the
// summary table is presented.
//
// Returns one RunResult per unit, in catalog order (not completion order;
// the two coincide here precisely because execution is sequential).
func (s *Sequencer) RunAll(ctx context.Context, out io.Writer) []RunResult {
	results := make([]RunResult, 0, len(s.units))

	s.presenter.PresentRunHeader(len(s.units), out)

	for _, unit := range s.units {
		s.presenter.PresentUnitHeader(unit, out)
		s.log.Debug("unit starting",
			logging.String("unit", unit.Name),
			logging.Int("ordinal", unit.Ordinal))

		res := s.runUnit(ctx, unit)
		results = append(results, res)

		s.presenter.PresentUnitResult(res, out)
		s.observer.ObserveUnitRun(unit.Name, res.Duration, res.Err)

		if res.Err != nil {
			s.log.Error("unit failed", res.Err,
				logging.String("unit", unit.Name),
				logging.Float64("elapsed_s", res.Duration.Seconds()))
		} else {
			s.log.Debug("unit finished",
				logging.String("unit", unit.Name),
				logging.Float64("elapsed_s", res.Duration.Seconds()))
		}
	}

	s.presenter.PresentSummary(results, out)
	return results
}

// runUnit invokes a single unit's action under a tracing span, converting
// panics into failures so a misbehaving demo cannot take down the run.
func (s *Sequencer) runUnit(ctx context.Context, unit Unit) (res RunResult) {
	ctx, span := s.tracer.Start(ctx, "unit.run", trace.WithAttributes(
		attribute.String("unit.name", unit.Name),
		attribute.Int("unit.ordinal", unit.Ordinal),
	))
	defer span.End()

	res.Unit = unit
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.Duration = time.Since(start)
			res.Err = fmt.Errorf("panic: %v", r)
			span.SetStatus(codes.Error, res.Err.Error())
		}
	}()

	err := unit.Action(ctx)
	res.Duration = time.Since(start)
	res.Err = err

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return res
}
