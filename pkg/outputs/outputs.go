// Package outputs collects the JSON outputs published by satisfied
// dependencies and merges them into one mapping.
package outputs

import (
	"context"
	"encoding/json"
	"fmt"
)

// Key is the name under which the merged outputs are reported.
const Key = "outputs"

// Fetcher retrieves and decodes one named output file.
type Fetcher interface {
	Fetch(ctx context.Context, file string) (map[string]any, error)
}

// FetchError reports a file that could not be retrieved or decoded.
type FetchError struct {
	File string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error: fetching outputs from %q: %v", e.File, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Merge copies src into dst. Keys already present are overwritten after
// warn is called with the key and the overwriting file.
func Merge(dst, src map[string]any, file string, warn func(string)) {
	for k, v := range src {
		if _, ok := dst[k]; ok && warn != nil {
			warn(fmt.Sprintf("overwriting previously set outputs.%s with output from %s", k, file))
		}
		dst[k] = v
	}
}

// Collect fetches files in order and merges them. The first failing file
// aborts the collection; no partial result is returned.
func Collect(ctx context.Context, f Fetcher, files []string, warn func(string)) (map[string]any, error) {
	merged := make(map[string]any)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values, err := f.Fetch(ctx, file)
		if err != nil {
			return nil, &FetchError{File: file, Err: err}
		}
		Merge(merged, values, file, warn)
	}
	return merged, nil
}

// Encode serializes merged outputs for reporting.
func Encode(merged map[string]any) (string, error) {
	data, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("encoding outputs: %w", err)
	}
	return string(data), nil
}
