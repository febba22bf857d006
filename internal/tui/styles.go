package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abrunet/asynclab/internal/ui"
)

// Style variables for the run view, initialized from the ui theme system
// via initTUIStyles().
var (
	headerStyle     lipgloss.Style
	elapsedStyle    lipgloss.Style
	unitIDStyle     lipgloss.Style
	unitTitleStyle  lipgloss.Style
	pendingStyle    lipgloss.Style
	runningStyle    lipgloss.Style
	successStyle    lipgloss.Style
	failureStyle    lipgloss.Style
	durationStyle   lipgloss.Style
	summaryStyle    lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Called at
// package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Dim)
	unitIDStyle = lipgloss.NewStyle().Foreground(t.Accent)
	unitTitleStyle = lipgloss.NewStyle().Foreground(t.Text)
	pendingStyle = lipgloss.NewStyle().Foreground(t.Dim)
	runningStyle = lipgloss.NewStyle().Foreground(t.Info)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	failureStyle = lipgloss.NewStyle().Foreground(t.Error)
	durationStyle = lipgloss.NewStyle().Foreground(t.Warning)
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)
}
