package waiter

import (
	"context"

	"github.com/dkoosis/waitfor/pkg/job"
)

// JobLister returns the current jobs of the observed run.
type JobLister interface {
	ListJobs(ctx context.Context) (*job.List, error)
}

// Logger receives the engine's progress lines. The polling and timeout
// goroutines may log concurrently.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Debug(msg string)
	StartGroup(label string)
	EndGroup()
}

// Reporter publishes the result of a run to the caller.
type Reporter interface {
	SetOutput(key, value string) error
	SetFailed(message string)
}
