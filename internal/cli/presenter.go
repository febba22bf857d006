package cli

import (
	"fmt"
	"io"

	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
	"github.com/abrunet/asynclab/internal/ui"
)

// Presenter renders sequencer progress for the command line with
// colorized output and an optional spinner while a unit runs.
type Presenter struct {
	// Verbose adds a memory statistics footer to the summary.
	Verbose bool

	spinner Spinner
}

// Verify interface compliance.
var _ sequencer.Presenter = (*Presenter)(nil)

// NewPresenter builds a CLI presenter. With animate set, a spinner runs
// while each unit executes; disable it when output is not a terminal.
func NewPresenter(animate, verbose bool) *Presenter {
	p := &Presenter{Verbose: verbose}
	if animate {
		p.spinner = newSpinner()
	}
	return p
}

// PresentRunHeader displays the opening banner.
func (p *Presenter) PresentRunHeader(total int, out io.Writer) {
	fmt.Fprintf(out, "%s=== Async Patterns Lab ===%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Running %d units\n", total)
}

// PresentUnitHeader announces the unit about to run and starts the
// spinner beside it.
func (p *Presenter) PresentUnitHeader(u sequencer.Unit, out io.Writer) {
	fmt.Fprintf(out, "\n%s[%s]%s %s\n", ui.ColorBlue(), u.ID(), ui.ColorReset(), u.Title)
	fmt.Fprintf(out, "  %s\n", u.Explanation)
	if p.spinner != nil {
		p.spinner.UpdateSuffix(fmt.Sprintf(" running %s", u.Name))
		p.spinner.Start()
	}
}

// PresentUnitResult stops the spinner and prints the status line for the
// unit that just finished.
func (p *Presenter) PresentUnitResult(r sequencer.RunResult, out io.Writer) {
	if p.spinner != nil {
		p.spinner.Stop()
	}
	duration := format.FormatExecutionDuration(r.Duration)
	if r.Success() {
		fmt.Fprintf(out, "  %s✅ done%s in %s%s%s\n",
			ui.ColorGreen(), ui.ColorReset(), ui.ColorYellow(), duration, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "  %s❌ failed%s after %s: %s\n",
		ui.ColorRed(), ui.ColorReset(), duration, r.ErrorMessage())
}

// PresentSummary displays the final table of unit, duration and status.
// Uses manual padding to correctly handle ANSI color codes.
func (p *Presenter) PresentSummary(results []sequencer.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")

	maxNameLen := 4 // "Unit" header length
	maxDurationLen := 8
	for _, res := range results {
		if id := res.Unit.ID(); len(id) > maxNameLen {
			maxNameLen = len(id)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	fmt.Fprintf(out, "%sUnit%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-4),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	failed := 0
	for _, res := range results {
		var status string
		if res.Err != nil {
			failed++
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		id := res.Unit.ID()
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), id, ui.ColorReset(), padRight("", maxNameLen-len(id)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}

	fmt.Fprintf(out, "\n%d of %d units succeeded\n", len(results)-failed, len(results))
	if p.Verbose {
		DisplayMemoryStats(out)
	}
}

// padRight returns s followed by `length` spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
