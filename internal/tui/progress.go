// Package tui renders batch progress while the sync engine runs. It is the
// interactive counterpart of the original tool's progress dialog: a bar, a
// running count, and a cancel key.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mogtools/ahsync/internal/domain"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// ProgressMsg carries the per-item progress counts from the fetch goroutine.
type ProgressMsg struct {
	Completed int
	Total     int
}

// DoneMsg ends the program when the batch reaches a terminal state.
type DoneMsg struct {
	Result domain.BatchResult
	Err    error
}

// Model is the progress view for one fetch batch.
type Model struct {
	server    string
	bar       progress.Model
	spin      spinner.Model
	completed int
	total     int
	done      bool
	result    domain.BatchResult
	err       error
	cancel    func() // requests cooperative cancellation of the batch
}

// NewModel creates a progress view. cancel is invoked when the user presses
// q, esc or ctrl+c; the batch then winds down on its own and sends DoneMsg.
func NewModel(server string, cancel func()) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{server: server, bar: bar, spin: spin, cancel: cancel}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		return m, nil

	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.done {
		return m.summary() + "\n"
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}

	status := fmt.Sprintf("Loading FFXIAH prices for %s... %d/%d (%d%%)",
		m.server, m.completed, m.total, int(percent*100))

	return fmt.Sprintf("%s %s\n%s\n%s\n",
		m.spin.View(),
		statusStyle.Render(status),
		m.bar.ViewAs(percent),
		dimStyle.Render("press q to cancel"))
}

func (m Model) summary() string {
	switch m.result.Outcome {
	case domain.OutcomeCanceled:
		return statusStyle.Render(fmt.Sprintf(
			"FFXIAH price fetch canceled after %d/%d items.", m.result.Completed, m.result.Total))
	case domain.OutcomeFailed:
		return errStyle.Render(fmt.Sprintf("FFXIAH price fetch failed: %v", m.err))
	default:
		if m.result.Total == 0 {
			return statusStyle.Render("FFXIAH prices already cached.")
		}
		return statusStyle.Render(fmt.Sprintf(
			"Loaded FFXIAH prices for %d items.", m.result.Completed))
	}
}

// Result exposes the terminal state once the program has quit.
func (m Model) Result() (domain.BatchResult, error) {
	return m.result, m.err
}
