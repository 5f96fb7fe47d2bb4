package waiter

import (
	"fmt"

	"github.com/dkoosis/waitfor/pkg/job"
)

// Summary records which job last finished for a satisfied dependency.
type Summary struct {
	Dependency string
	LastJob    job.Job
}

func (s Summary) String() string {
	return fmt.Sprintf("dependency: %q, lastJob to finish: %q", s.Dependency, s.LastJob.Name)
}
