// Package tui renders a live view of a wait in the terminal.
//
// The engine runs on its own goroutine and feeds the bubbletea program
// through Program.OnEvent and the Logger returned by Program.Logger.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/waitfor/pkg/waiter"
)

const maxLogLines = 8

type eventMsg waiter.Event

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarning
	levelDebug
	levelError
	levelOutput
)

type logMsg struct {
	level logLevel
	text  string
}

type satisfied struct {
	name    string
	lastJob string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

type model struct {
	cancel  context.CancelFunc
	spinner spinner.Model

	pending   []string
	satisfied []satisfied
	total     int
	polls     int
	logs      []logMsg

	finished bool
	err      error
}

func newModel(jobs []string, cancel context.CancelFunc) model {
	return model{
		cancel:  cancel,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
		pending: append([]string(nil), jobs...),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
		}
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case eventMsg:
		m.apply(waiter.Event(msg))
	case logMsg:
		m.logs = append(m.logs, msg)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
	}
	return m, nil
}

func (m *model) apply(ev waiter.Event) {
	switch ev.Type {
	case waiter.EventStarted, waiter.EventWaiting:
		m.pending = append([]string(nil), ev.Pending...)
	case waiter.EventPolled:
		m.total = ev.Total
		m.polls++
	case waiter.EventSatisfied:
		for i, name := range m.pending {
			if name == ev.Dependency {
				m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
				break
			}
		}
		m.satisfied = append(m.satisfied, satisfied{name: ev.Dependency, lastJob: ev.Job.Name})
	case waiter.EventFinished:
		m.finished = true
		m.err = ev.Err
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("waitfor"))
	b.WriteString("\n\n")

	switch {
	case !m.finished:
		fmt.Fprintf(&b, "%s waiting for %d of %d dependencies", m.spinner.View(), len(m.pending), len(m.pending)+len(m.satisfied))
		if m.polls > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf(" (run has %d jobs, %d polls)", m.total, m.polls)))
		}
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	default:
		b.WriteString(doneStyle.Render("✓ all job dependencies completed with success"))
	}
	b.WriteString("\n\n")

	width := m.nameWidth()
	for _, name := range m.pending {
		fmt.Fprintf(&b, "  %s %s\n", pendingStyle.Render("○"), name)
	}
	for _, s := range m.satisfied {
		fmt.Fprintf(&b, "  %s %s %s\n",
			doneStyle.Render("✓"),
			runewidth.FillRight(s.name, width),
			mutedStyle.Render("last job: "+s.lastJob))
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		for _, l := range m.logs {
			b.WriteString(renderLog(l))
			b.WriteString("\n")
		}
	}
	if !m.finished {
		b.WriteString(mutedStyle.Render("\nctrl+c to stop waiting"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) nameWidth() int {
	width := 0
	for _, s := range m.satisfied {
		if w := runewidth.StringWidth(s.name); w > width {
			width = w
		}
	}
	return width
}

func renderLog(l logMsg) string {
	switch l.level {
	case levelWarning:
		return warnStyle.Render("⚠ " + l.text)
	case levelError:
		return errorStyle.Render("✗ " + l.text)
	case levelDebug:
		return mutedStyle.Render("· " + l.text)
	case levelOutput:
		return doneStyle.Render("→ " + l.text)
	default:
		return l.text
	}
}
