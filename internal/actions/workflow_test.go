package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_EmitsCommands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewWorkflow(&buf, "")

	a.StartGroup("checking status of jobs: [build] with prefix")
	a.Info(`job "build" not started yet 👀`)
	a.Debug("current run jobs: 3")
	a.Warning("line one\nline two 100%")
	a.EndGroup()
	a.SetFailed("error: job \"build\" failed\r")

	want := strings.Join([]string{
		"::group::checking status of jobs: [build] with prefix",
		`job "build" not started yet 👀`,
		"::debug::current run jobs: 3",
		"::warning::line one%0Aline two 100%25",
		"::endgroup::",
		`::error::error: job "build" failed%0D`,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWorkflow_SetOutput_UsesSetOutputCommand_When_NoOutputFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewWorkflow(&buf, "")
	require.NoError(t, a.SetOutput("outputs", `{"a":"50%"}`))
	assert.Equal(t, "::set-output name=outputs::{\"a\":\"50%25\"}\n", buf.String())
}

func TestWorkflow_SetOutput_AppendsHeredoc_When_OutputFileSet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "github_output")
	var buf bytes.Buffer
	a := NewWorkflow(&buf, path)
	a.delimiter = func() string { return "ghadelimiter_fixed" }

	require.NoError(t, a.SetOutput("outputs", "{\"a\":\n1}"))
	require.NoError(t, a.SetOutput("other", "x"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outputs<<ghadelimiter_fixed\n{\"a\":\n1}\nghadelimiter_fixed\nother<<ghadelimiter_fixed\nx\nghadelimiter_fixed\n", string(data))
	assert.Empty(t, buf.String())
}

func TestWorkflow_SetOutput_RejectsValue_When_ContainsDelimiter(t *testing.T) {
	t.Parallel()

	a := NewWorkflow(&bytes.Buffer{}, filepath.Join(t.TempDir(), "out"))
	a.delimiter = func() string { return "EOF" }
	require.Error(t, a.SetOutput("outputs", "contains EOF"))
}

func TestWorkflow_DefaultDelimiter_IsUnique(t *testing.T) {
	t.Parallel()

	a := NewWorkflow(&bytes.Buffer{}, "")
	first, second := a.delimiter(), a.delimiter()
	assert.True(t, strings.HasPrefix(first, "ghadelimiter_"))
	assert.NotEqual(t, first, second)
}

func TestWorkflow_ConcurrentWrites_KeepLinesWhole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	a := NewWorkflow(&buf, "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Debug("action-timeout done")
			a.Info("waiting for jobs [build]")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 40)
	for _, l := range lines {
		assert.Contains(t, []string{"::debug::action-timeout done", "waiting for jobs [build]"}, l)
	}
}
