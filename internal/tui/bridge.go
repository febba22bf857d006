package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abrunet/asynclab/internal/sequencer"
)

// programRef is a shared reference to the tea.Program. Because bubbletea
// copies the model on every Update, a pointer that survives copies is
// needed so the run goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// teaPresenter implements sequencer.Presenter by forwarding run events as
// bubbletea messages instead of writing to stdout.
type teaPresenter struct {
	ref *programRef
}

// Verify interface compliance.
var _ sequencer.Presenter = (*teaPresenter)(nil)

func (t *teaPresenter) PresentRunHeader(int, io.Writer) {}

func (t *teaPresenter) PresentUnitHeader(u sequencer.Unit, _ io.Writer) {
	t.ref.Send(UnitStartedMsg{Ordinal: u.Ordinal})
}

func (t *teaPresenter) PresentUnitResult(r sequencer.RunResult, _ io.Writer) {
	t.ref.Send(UnitFinishedMsg{Ordinal: r.Unit.Ordinal, Result: r})
}

func (t *teaPresenter) PresentSummary([]sequencer.RunResult, io.Writer) {}
