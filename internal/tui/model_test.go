package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/waitfor/pkg/job"
	"github.com/dkoosis/waitfor/pkg/waiter"
)

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func TestModel_TracksDependencies(t *testing.T) {
	t.Parallel()

	m := newModel([]string{"build", "test", "lint"}, nil)
	m = update(t, m, eventMsg{Type: waiter.EventPolled, Total: 6})
	m = update(t, m, eventMsg{Type: waiter.EventSatisfied, Dependency: "test", Job: job.New("test (ubuntu)", "completed", "success")})

	assert.Equal(t, []string{"build", "lint"}, m.pending)
	require.Len(t, m.satisfied, 1)
	assert.Equal(t, satisfied{name: "test", lastJob: "test (ubuntu)"}, m.satisfied[0])

	view := m.View()
	assert.Contains(t, view, "waiting for 2 of 3 dependencies")
	assert.Contains(t, view, "(run has 6 jobs, 1 polls)")
	assert.Contains(t, view, "last job: test (ubuntu)")
	assert.Contains(t, view, "ctrl+c to stop waiting")
}

func TestModel_WaitingEventReplacesPending(t *testing.T) {
	t.Parallel()

	m := newModel([]string{"a", "b"}, nil)
	m = update(t, m, eventMsg{Type: waiter.EventWaiting, Pending: []string{"b"}})
	assert.Equal(t, []string{"b"}, m.pending)
}

func TestModel_AlignsSatisfiedNames(t *testing.T) {
	t.Parallel()

	m := newModel([]string{"a", "longer-name"}, nil)
	m = update(t, m, eventMsg{Type: waiter.EventSatisfied, Dependency: "a", Job: job.New("a1", "completed", "success")})
	m = update(t, m, eventMsg{Type: waiter.EventSatisfied, Dependency: "longer-name", Job: job.New("l1", "completed", "success")})

	assert.Equal(t, 11, m.nameWidth())
	assert.Contains(t, m.View(), "a"+strings.Repeat(" ", 11)+"last job: a1")
}

func TestModel_ShowsOutcome(t *testing.T) {
	t.Parallel()

	m := newModel([]string{"a"}, nil)
	done := update(t, m, eventMsg{Type: waiter.EventFinished})
	assert.Contains(t, done.View(), "all job dependencies completed with success")
	assert.NotContains(t, done.View(), "ctrl+c")

	failed := update(t, m, eventMsg{Type: waiter.EventFinished, Err: errors.New("error: jobs [a] did not complete in 1 minutes")})
	assert.Contains(t, failed.View(), "did not complete in 1 minutes")
}

func TestModel_KeepsRecentLogLines(t *testing.T) {
	t.Parallel()

	m := newModel(nil, nil)
	for i := range maxLogLines + 3 {
		m = update(t, m, logMsg{level: levelInfo, text: fmt.Sprintf("line %d", i)})
	}
	require.Len(t, m.logs, maxLogLines)
	assert.Equal(t, "line 3", m.logs[0].text)
	assert.NotContains(t, m.View(), "line 2\n")
}

func TestModel_CtrlCCancels(t *testing.T) {
	t.Parallel()

	var cancelled int
	m := newModel([]string{"a"}, func() { cancelled++ })
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, 2, cancelled)
}

func TestLogger_ForwardsMessages(t *testing.T) {
	t.Parallel()

	var got []tea.Msg
	send := func(msg tea.Msg) { got = append(got, msg) }

	quiet := &Logger{send: send}
	quiet.Debug("hidden")
	quiet.Info("info")
	quiet.Warning("warn")
	quiet.StartGroup("group")
	quiet.EndGroup()
	require.NoError(t, quiet.SetOutput("outputs", `{"a":1}`))
	quiet.SetFailed("boom")

	verbose := &Logger{send: send, debug: true}
	verbose.Debug("shown")

	assert.Equal(t, []tea.Msg{
		logMsg{level: levelInfo, text: "info"},
		logMsg{level: levelWarning, text: "warn"},
		logMsg{level: levelOutput, text: `outputs={"a":1}`},
		logMsg{level: levelError, text: "boom"},
		logMsg{level: levelDebug, text: "shown"},
	}, got)
}
