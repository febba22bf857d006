package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/abrunet/asynclab/internal/cli"
	"github.com/abrunet/asynclab/internal/config"
	"github.com/abrunet/asynclab/internal/demos"
	apperrors "github.com/abrunet/asynclab/internal/errors"
	"github.com/abrunet/asynclab/internal/logging"
	"github.com/abrunet/asynclab/internal/metrics"
	"github.com/abrunet/asynclab/internal/queue"
	"github.com/abrunet/asynclab/internal/sequencer"
	"github.com/abrunet/asynclab/internal/server"
	"github.com/abrunet/asynclab/internal/tui"
	"github.com/abrunet/asynclab/internal/ui"
)

// Application represents the asynclab application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	registry func(demos.Params) []sequencer.Unit
	log      logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry substitutes the unit catalog builder. Tests use this to
// run fast synthetic units through the real application wiring.
func WithRegistry(r func(demos.Params) []sequencer.Unit) AppOption {
	return func(a *Application) { a.registry = r }
}

// WithLogger substitutes the application logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.log = l }
}

// New creates an Application by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, registry: demos.Registry}
	for _, opt := range opts {
		opt(app)
	}

	programName := "asynclab"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if a.log == nil {
		a.log = logging.NewLogger(a.ErrWriter, "asynclab")
	}

	ui.InitTheme(a.Config.NoColor)
	if !a.Config.NoColor && a.Config.Theme != "" {
		ui.SetTheme(a.Config.Theme)
	}

	if a.Config.List {
		cli.DisplayCatalog(a.registry(demos.Params{BaseDelay: a.Config.BaseDelay}), out)
		return apperrors.ExitSuccess
	}
	if a.Config.Serve {
		return a.runServe(ctx)
	}
	if a.Config.QueueDemo {
		return a.runQueueDemo(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runSequence(ctx, out)
}

// units builds the catalog, restricted by -only if set. The narrative
// writer is where unit actions print their own output.
func (a *Application) units(narrative io.Writer) ([]sequencer.Unit, error) {
	params := demos.Params{
		BaseDelay: a.Config.BaseDelay,
		Dir:       filepath.Join(a.Config.DataDir, "samples"),
		Out:       narrative,
	}
	return demos.Filter(a.registry(params), a.Config.Only)
}

// lifecycle applies the run timeout and signal handling shared by all
// modes.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runSequence runs the catalog start to finish and presents the summary.
// Unit failures are part of the show; the exit code stays zero unless
// the run itself was cut short.
func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	ctx, done := a.lifecycle(ctx)
	defer done()

	narrative := io.Writer(out)
	var presenter sequencer.Presenter = sequencer.NullPresenter{}
	if a.Config.Quiet {
		narrative = io.Discard
	} else {
		// The spinner assumes a terminal, same as colors, so it follows
		// the no-color switch.
		presenter = cli.NewPresenter(!a.Config.NoColor, a.Config.Verbose)
	}

	units, err := a.units(narrative)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	seq := sequencer.New(units,
		sequencer.WithPresenter(presenter),
		sequencer.WithObserver(metrics.NewUnitMetrics(prometheus.NewRegistry())),
		sequencer.WithLogger(a.log),
	)
	seq.RunAll(ctx, out)

	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive run view.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, done := a.lifecycle(ctx)
	defer done()

	units, err := a.units(io.Discard)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, units, metrics.NewUnitMetrics(prometheus.NewRegistry()), Version)
}

// runServe starts the background-task demo HTTP service until interrupted.
func (a *Application) runServe(ctx context.Context) int {
	ctx, done := a.lifecycle(ctx)
	defer done()

	srv := server.New(ctx, server.Config{
		Addr:      a.Config.Addr,
		BaseDelay: a.Config.BaseDelay,
		DataDir:   a.Config.DataDir,
		MaxJobs:   a.Config.QueueWorkers,
	}, a.log)

	if err := srv.ListenAndServe(ctx); err != nil {
		a.log.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runQueueDemo drives the producer/worker-pool demonstration.
func (a *Application) runQueueDemo(ctx context.Context, out io.Writer) int {
	ctx, done := a.lifecycle(ctx)
	defer done()

	dbPath := ":memory:"
	if a.Config.DataDir != "" {
		dbPath = filepath.Join(a.Config.DataDir, "queue.db")
	}

	err := queue.RunDemo(ctx, queue.DemoConfig{
		Workers:   a.Config.QueueWorkers,
		Buffer:    a.Config.QueueBuffer,
		JobLimit:  a.Config.JobLimit,
		BaseDelay: a.Config.BaseDelay,
		DBPath:    dbPath,
	}, a.log, out)
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return apperrors.ExitErrorCanceled
	default:
		a.log.Error("queue demo failed", err)
		return apperrors.ExitErrorGeneric
	}
}

// IsHelpError checks if the error came from the --help flag.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
