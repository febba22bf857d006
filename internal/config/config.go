// Package config defines the application configuration and its resolution
// chain: command-line flags take precedence over ASYNCLAB_-prefixed
// environment variables, which take precedence over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/abrunet/asynclab/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "ASYNCLAB_"

// Default values for all configurable knobs.
const (
	DefaultBaseDelay    = 1 * time.Second
	DefaultTimeout      = 10 * time.Minute
	DefaultAddr         = ":8080"
	DefaultQueueWorkers = 3
	DefaultQueueBuffer  = 16
	DefaultJobLimit     = 15 * time.Second
)

// AppConfig holds the complete runtime configuration of the demo runner.
type AppConfig struct {
	// Only restricts the run to a comma-separated list of unit names.
	// Empty runs the full catalog.
	Only string
	// List prints the unit catalog and exits.
	List bool
	// Quiet suppresses per-unit narration and the spinner.
	Quiet bool
	// Verbose enables debug logging and the resource-usage footer.
	Verbose bool
	// NoColor disables ANSI colors in all output.
	NoColor bool
	// Theme selects the color theme ("dark", "light", "none").
	Theme string
	// TUI launches the interactive dashboard instead of plain CLI output.
	TUI bool
	// Serve starts the background-task demo HTTP service.
	Serve bool
	// Addr is the listen address for the demo HTTP service.
	Addr string
	// QueueDemo runs the task-queue demonstration.
	QueueDemo bool
	// QueueWorkers is the number of concurrent queue workers.
	QueueWorkers int
	// QueueBuffer is the broker's job buffer capacity.
	QueueBuffer int
	// JobLimit is the hard per-job execution limit in the queue demo.
	JobLimit time.Duration
	// BaseDelay is the length of one pedagogical "time-unit". Demo sleeps
	// are expressed as multiples of this, so tests can shrink it to
	// milliseconds while interactive runs keep human-observable pacing.
	BaseDelay time.Duration
	// Timeout bounds long-running modes (serve, TUI, queue demo). The
	// sequencer itself imposes no per-unit timeout.
	Timeout time.Duration
	// DataDir is the scratch directory for file demos, uploaded files and
	// the queue result store.
	DataDir string
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags not explicitly set.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag parsing errors and usage text.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError for invalid values, or flag.ErrHelp for --help.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	var cfg AppConfig

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Only, "only", "", "Comma-separated unit names to run (default: all)")
	fs.BoolVar(&cfg.List, "list", false, "List the demo unit catalog and exit")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress narration; print only the summary")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging and the resource footer")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors")
	fs.StringVar(&cfg.Theme, "theme", "dark", "Color theme: dark, light or none")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run the interactive dashboard")
	fs.BoolVar(&cfg.Serve, "serve", false, "Start the background-task demo HTTP service")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for the demo HTTP service")
	fs.BoolVar(&cfg.QueueDemo, "queue-demo", false, "Run the task-queue demonstration")
	fs.IntVar(&cfg.QueueWorkers, "queue-workers", DefaultQueueWorkers, "Concurrent queue workers")
	fs.IntVar(&cfg.QueueBuffer, "queue-buffer", DefaultQueueBuffer, "Broker job buffer capacity")
	fs.DurationVar(&cfg.JobLimit, "job-limit", DefaultJobLimit, "Hard per-job execution limit")
	fs.DurationVar(&cfg.BaseDelay, "base-delay", DefaultBaseDelay, "Length of one demo time-unit")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Lifecycle timeout for long-running modes")
	fs.StringVar(&cfg.DataDir, "data-dir", filepath.Join(os.TempDir(), "asynclab"), "Scratch directory for demos")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Runs a catalog of concurrency-pattern demonstrations, one at a time,\n")
		fmt.Fprintf(errWriter, "timing each and printing a comparison summary.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range values.
func (c AppConfig) Validate() error {
	if c.BaseDelay <= 0 {
		return apperrors.NewConfigError("base-delay must be positive, got %s", c.BaseDelay)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.QueueWorkers < 1 {
		return apperrors.NewConfigError("queue-workers must be at least 1, got %d", c.QueueWorkers)
	}
	if c.QueueBuffer < 1 {
		return apperrors.NewConfigError("queue-buffer must be at least 1, got %d", c.QueueBuffer)
	}
	if c.JobLimit <= 0 {
		return apperrors.NewConfigError("job-limit must be positive, got %s", c.JobLimit)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("-tui and -quiet are mutually exclusive")
	}
	return nil
}
