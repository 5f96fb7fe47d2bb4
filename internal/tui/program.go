package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/waitfor/pkg/waiter"
)

// Program is a running live view.
type Program struct {
	p     *tea.Program
	debug bool
}

// New builds a live view for jobs writing to out. cancel is called when the
// user presses ctrl+c.
func New(out io.Writer, jobs []string, cancel context.CancelFunc, debug bool) *Program {
	p := tea.NewProgram(newModel(jobs, cancel), tea.WithOutput(out))
	return &Program{p: p, debug: debug}
}

// Run blocks until Quit is called.
func (p *Program) Run() error {
	_, err := p.p.Run()
	return err
}

// Quit stops the program after rendering the final frame.
func (p *Program) Quit() { p.p.Quit() }

// OnEvent forwards engine events; pass it to waiter.WithOnEvent.
func (p *Program) OnEvent(ev waiter.Event) { p.p.Send(eventMsg(ev)) }

// Logger returns a waiter.Logger and waiter.Reporter that print below the
// dependency list.
func (p *Program) Logger() *Logger { return &Logger{send: p.p.Send, debug: p.debug} }

// Logger forwards log lines to the program. Groups are not drawn; the live
// list already shows what is being checked.
type Logger struct {
	send  func(tea.Msg)
	debug bool
}

func (l *Logger) Info(msg string)    { l.send(logMsg{level: levelInfo, text: msg}) }
func (l *Logger) Warning(msg string) { l.send(logMsg{level: levelWarning, text: msg}) }

func (l *Logger) Debug(msg string) {
	if l.debug {
		l.send(logMsg{level: levelDebug, text: msg})
	}
}

func (l *Logger) StartGroup(string) {}
func (l *Logger) EndGroup()         {}

// SetOutput shows the reported value.
func (l *Logger) SetOutput(key, value string) error {
	l.send(logMsg{level: levelOutput, text: fmt.Sprintf("%s=%s", key, value)})
	return nil
}

// SetFailed shows the failure message.
func (l *Logger) SetFailed(message string) {
	l.send(logMsg{level: levelError, text: message})
}
