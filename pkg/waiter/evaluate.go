package waiter

import (
	"fmt"

	"github.com/dkoosis/waitfor/pkg/dependency"
	"github.com/dkoosis/waitfor/pkg/job"
)

// evaluate returns the pending dependencies satisfied by jobs, in request
// order. Dependencies without matching jobs are warned about and skipped.
// Completion is checked for every dependency before success is checked for
// the completed ones.
func (e *Engine) evaluate(jobs []job.Job) ([]dependency.Dependency, error) {
	var candidates []dependency.Dependency
	for _, name := range e.pending.Names() {
		d := dependency.Match(e.cfg.Mode, name, jobs, e.cfg.IgnoreSkipped)
		if d.IsEmpty() {
			e.log.Warning(fmt.Sprintf("⚠️ no job found for %q in run", name))
			continue
		}
		candidates = append(candidates, d)
	}

	var completed []dependency.Dependency
	for _, d := range candidates {
		ok, err := d.Completed(e.log)
		if err != nil {
			return nil, err
		}
		if ok {
			completed = append(completed, d)
		}
	}

	var satisfied []dependency.Dependency
	for _, d := range completed {
		ok, err := d.Successful(e.log)
		if err != nil {
			return nil, err
		}
		if ok {
			satisfied = append(satisfied, d)
		}
	}
	return satisfied, nil
}
