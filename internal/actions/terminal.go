package actions

import (
	"fmt"
	"io"
	"sync"
)

// Terminal writes styled log lines for local runs. It is safe for
// concurrent use.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	theme   Theme
	debug   bool
	inGroup bool
}

// NewTerminal writes to w. Debug lines are dropped unless debug is set.
func NewTerminal(w io.Writer, theme Theme, debug bool) *Terminal {
	return &Terminal{w: w, theme: theme, debug: debug}
}

func (t *Terminal) Info(msg string) { t.line(t.theme.Info.Render(msg)) }

func (t *Terminal) Warning(msg string) {
	t.line(t.theme.Warning.Render(t.theme.Icons.Warn + " " + msg))
}

func (t *Terminal) Debug(msg string) {
	if !t.debug {
		return
	}
	t.line(t.theme.Debug.Render(t.theme.Icons.Debug + " " + msg))
}

func (t *Terminal) StartGroup(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, t.theme.Group.Render(t.theme.Icons.Group+" "+label))
	t.inGroup = true
}

func (t *Terminal) EndGroup() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inGroup = false
}

// SetOutput prints the output so it can be copied from the terminal.
func (t *Terminal) SetOutput(key, value string) error {
	t.line(t.theme.Output.Render(fmt.Sprintf("%s %s=%s", t.theme.Icons.Output, key, value)))
	return nil
}

func (t *Terminal) SetFailed(msg string) {
	t.line(t.theme.Error.Render(t.theme.Icons.Fail + " " + msg))
}

func (t *Terminal) line(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inGroup {
		s = "  " + s
	}
	fmt.Fprintln(t.w, s)
}
