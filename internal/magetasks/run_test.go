package magetasks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSections_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	done, err := RunSections(
		Section{Name: "One", Run: func() error { ran = append(ran, "one"); SetSectionSummary("one ok"); return nil }},
		Section{Name: "Two", Run: func() error { ran = append(ran, "two"); return boom }},
		Section{Name: "Three", Run: func() error { ran = append(ran, "three"); return nil }},
	)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "two: boom", err.Error())
	assert.Equal(t, []string{"One"}, done)
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRun_ReportsMissingCommand(t *testing.T) {
	err := Run("missing", "waitfor-no-such-binary")
	require.Error(t, err)
	assert.True(t, IsCommandNotFound(err))
}
