package waiter

import (
	"time"

	"github.com/dkoosis/waitfor/pkg/job"
)

// EventType distinguishes engine events.
type EventType int

const (
	EventStarted EventType = iota
	EventPolled
	EventSatisfied
	EventWaiting
	EventFinished
)

// Event is a progress notification for live views. Events are emitted from
// the polling goroutine, except EventStarted and EventFinished which come
// from the goroutine calling Run.
type Event struct {
	Type       EventType
	Pending    []string // EventStarted, EventWaiting
	Total      int      // EventPolled
	Dependency string   // EventSatisfied
	Job        job.Job  // EventSatisfied
	Err        error    // EventFinished
	When       time.Time
}
