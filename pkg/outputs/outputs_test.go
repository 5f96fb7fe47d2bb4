package outputs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/waitfor/pkg/outputs"
)

type fakeFetcher struct {
	files map[string]map[string]any
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, file string) (map[string]any, error) {
	f.calls = append(f.calls, file)
	values, ok := f.files[file]
	if !ok {
		return nil, errors.New("artifact not found")
	}
	return values, nil
}

func TestCollect_LastWriterWins_When_KeysCollide(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{files: map[string]map[string]any{
		"first.json":  {"out1": "v1", "out2": map[string]any{"x": float64(1)}},
		"second.json": {"out1": "v2"},
	}}

	var warnings []string
	merged, err := outputs.Collect(context.Background(), f, []string{"first.json", "second.json"}, func(msg string) {
		warnings = append(warnings, msg)
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"out1": "v2", "out2": map[string]any{"x": float64(1)}}, merged)
	assert.Equal(t, []string{"overwriting previously set outputs.out1 with output from second.json"}, warnings)
	assert.Equal(t, []string{"first.json", "second.json"}, f.calls)

	encoded, err := outputs.Encode(merged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"out1":"v2","out2":{"x":1}}`, encoded)
}

func TestCollect_FailsWholeCollection_When_OneFileMissing(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{files: map[string]map[string]any{
		"first.json": {"out1": "v1"},
	}}

	merged, err := outputs.Collect(context.Background(), f, []string{"first.json", "missing.json", "third.json"}, nil)
	require.Error(t, err)
	assert.Nil(t, merged)

	var fetchErr *outputs.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "missing.json", fetchErr.File)
	assert.Equal(t, `error: fetching outputs from "missing.json": artifact not found`, err.Error())
	assert.Equal(t, []string{"first.json", "missing.json"}, f.calls, "stops at the failing file")
}

func TestCollect_StopsEarly_When_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{}
	_, err := outputs.Collect(ctx, f, []string{"first.json"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}
