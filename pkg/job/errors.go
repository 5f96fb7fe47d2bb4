package job

import (
	"errors"
	"fmt"
)

// Sentinel kinds for classification failures. Match with errors.Is.
var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrUnknownConclusion = errors.New("unknown conclusion")
	ErrFailed            = errors.New("dependency failed")
	ErrSkipped           = errors.New("dependency skipped")
	ErrCancelled         = errors.New("dependency cancelled")
)

// Error is a fatal classification result for a single job.
type Error struct {
	Kind  error
	Job   string
	Value string // offending raw value, set for the unknown kinds
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnknownStatus:
		return fmt.Sprintf("error: unknown status %q of job %q", e.Value, e.Job)
	case ErrUnknownConclusion:
		return fmt.Sprintf("error: unknown conclusion %q of job %q", e.Value, e.Job)
	case ErrFailed:
		return fmt.Sprintf("error: job %q failed", e.Job)
	case ErrSkipped:
		return fmt.Sprintf("error: job dependency %q skipped but ignore-skipped not set", e.Job)
	case ErrCancelled:
		return fmt.Sprintf("error: job dependency %q got cancelled", e.Job)
	default:
		return fmt.Sprintf("error: job %q: %v", e.Job, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Kind }
