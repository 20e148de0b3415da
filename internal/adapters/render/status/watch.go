package status

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/notetime-cli/internal/application"
)

type watchTickMsg time.Time

// watchModel keeps the snapshot taken at launch on screen and advances
// the running session's elapsed time once a second. The ledger itself is
// not reloaded while watching.
type watchModel struct {
	snapshot application.StatusSnapshot
	baseMs   int64
	started  time.Time
	now      func() time.Time
	spinner  spinner.Model
	styles   styles
	quitting bool
}

func newWatchModel(snapshot application.StatusSnapshot, now func() time.Time) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
	)

	return watchModel{
		snapshot: snapshot,
		baseMs:   snapshot.RunningMs,
		started:  now(),
		now:      now,
		spinner:  s,
		styles:   newStyles(),
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case watchTickMsg:
		if m.snapshot.Session.Active() {
			m.snapshot.RunningMs = m.baseMs + m.now().Sub(m.started).Milliseconds()
		}
		return m, watchTick()
	default:
		return m, nil
	}
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	view := renderView(m.snapshot, RenderOptions{Now: m.now()}, m.styles)
	footer := m.styles.header.Render(fmt.Sprintf("%s live, q to quit", m.spinner.View()))

	return lipgloss.JoinVertical(lipgloss.Left, view, m.styles.section.Render(footer)) + "\n"
}

// Watch keeps the status snapshot on screen until the user quits.
func Watch(ctx context.Context, output io.Writer, snapshot application.StatusSnapshot, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	p := tea.NewProgram(
		newWatchModel(snapshot, now),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
