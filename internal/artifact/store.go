// Package artifact retrieves the output files published by dependency jobs.
//
// A Store resolves a file name to its bytes. Backends exist for GitHub run
// artifacts, S3-compatible buckets and a local directory; CachedStore sits in
// front of any of them, and JSONFetcher turns a Store into an
// outputs.Fetcher.
package artifact

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no artifact exists under the requested name.
var ErrNotFound = errors.New("artifact not found")

// Store reads artifacts by name.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Logger receives debug lines from stores that talk to remote systems.
type Logger interface {
	Debug(msg string)
}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
