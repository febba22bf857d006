package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/abrunet/asynclab/internal/errors"
	"github.com/abrunet/asynclab/internal/format"
	"github.com/abrunet/asynclab/internal/sequencer"
)

type unitStatus int

const (
	statusPending unitStatus = iota
	statusRunning
	statusDone
	statusFailed
)

type unitRow struct {
	unit   sequencer.Unit
	status unitStatus
	result sequencer.RunResult
}

// Model is the root bubbletea model for the live run view.
type Model struct {
	rows    []unitRow
	byOrd   map[int]int
	spin    spinner.Model
	keymap  KeyMap
	ref     *programRef
	obs     sequencer.Observer
	version string

	ctx    context.Context
	cancel context.CancelFunc

	startTime time.Time
	endTime   time.Time
	width     int
	done      bool
	quitting  bool
	exitCode  int
}

// NewModel creates the run view for the given unit catalog.
func NewModel(parentCtx context.Context, units []sequencer.Unit, obs sequencer.Observer, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	rows := make([]unitRow, len(units))
	byOrd := make(map[int]int, len(units))
	for i, u := range units {
		rows[i] = unitRow{unit: u}
		byOrd[u.Ordinal] = i
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		rows:      rows,
		byOrd:     byOrd,
		spin:      sp,
		keymap:    DefaultKeyMap(),
		ref:       &programRef{},
		obs:       obs,
		version:   version,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.units(), m.obs),
		watchContextCmd(m.ctx),
	)
}

func (m Model) units() []sequencer.Unit {
	units := make([]sequencer.Unit, len(m.rows))
	for i, row := range m.rows {
		units[i] = row.unit
	}
	return units
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case UnitStartedMsg:
		if i, ok := m.byOrd[msg.Ordinal]; ok {
			m.rows[i].status = statusRunning
		}
		return m, nil

	case UnitFinishedMsg:
		if i, ok := m.byOrd[msg.Ordinal]; ok {
			m.rows[i].result = msg.Result
			if msg.Result.Success() {
				m.rows[i].status = statusDone
			} else {
				m.rows[i].status = statusFailed
			}
		}
		return m, nil

	case RunDoneMsg:
		m.done = true
		m.endTime = time.Now()
		return m, nil

	case ContextCancelledMsg:
		// A quit keypress cancels the context too; only an external
		// cancellation (lifecycle timeout or signal) that cut the run
		// short maps to the canceled exit code.
		if !m.done {
			m.done = true
			m.endTime = time.Now()
			if !m.quitting {
				m.exitCode = apperrors.ExitErrorCanceled
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the run view.
func (m Model) View() string {
	var b strings.Builder

	title := "Async Patterns Lab"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	elapsed := m.elapsed()
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		headerStyle.Render(title),
		elapsedStyle.Render(fmt.Sprintf(" %s", format.FormatSeconds(elapsed))))
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	if m.done {
		succeeded := 0
		for _, row := range m.rows {
			if row.status == statusDone {
				succeeded++
			}
		}
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(fmt.Sprintf(
			"%d of %d units succeeded in %s",
			succeeded, len(m.rows), format.FormatSeconds(elapsed))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerKeyStyle.Render("q"))
	b.WriteString(footerDescStyle.Render(" quit"))
	return b.String()
}

func (m Model) renderRow(row unitRow) string {
	var icon, suffix string
	switch row.status {
	case statusRunning:
		icon = m.spin.View()
	case statusDone:
		icon = successStyle.Render("✔")
		suffix = durationStyle.Render(format.FormatExecutionDuration(row.result.Duration))
	case statusFailed:
		icon = failureStyle.Render("✖")
		suffix = failureStyle.Render(row.result.ErrorMessage())
	default:
		icon = pendingStyle.Render("·")
	}

	line := fmt.Sprintf("%s %s %s",
		icon,
		unitIDStyle.Render(row.unit.ID()),
		unitTitleStyle.Render(row.unit.Title))
	if suffix != "" {
		line += "  " + suffix
	}
	return line
}

func (m Model) elapsed() time.Duration {
	if m.done {
		return m.endTime.Sub(m.startTime)
	}
	return time.Since(m.startTime)
}

// Run is the public entry point for the TUI mode. It creates the
// bubbletea program, runs the catalog behind it, and returns the exit code.
func Run(ctx context.Context, units []sequencer.Unit, obs sequencer.Observer, version string) int {
	// Rebuild styles from the current ui theme (set via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, units, obs, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the run goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd launches the sequencer in the background; progress arrives
// through the teaPresenter bridge.
func startRunCmd(ref *programRef, ctx context.Context, units []sequencer.Unit, obs sequencer.Observer) tea.Cmd {
	return func() tea.Msg {
		opts := []sequencer.Option{sequencer.WithPresenter(&teaPresenter{ref: ref})}
		if obs != nil {
			opts = append(opts, sequencer.WithObserver(obs))
		}
		seq := sequencer.New(units, opts...)
		results := seq.RunAll(ctx, io.Discard)
		return RunDoneMsg{Results: results}
	}
}

// tickCmd refreshes the elapsed display twice a second.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
