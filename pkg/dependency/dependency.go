package dependency

import (
	"sort"

	"github.com/dkoosis/waitfor/pkg/job"
)

// Dependency is a requested name and the jobs currently matching it.
// It is rebuilt from the latest job list on every poll cycle.
type Dependency struct {
	Name          string
	Jobs          []job.Job
	IgnoreSkipped bool
}

// IsEmpty reports whether no job matched. An empty dependency is never
// satisfied.
func (d Dependency) IsEmpty() bool { return len(d.Jobs) == 0 }

// Completed reports whether every matched job has completed. Every job is
// classified so each in-progress job gets its own log line.
func (d Dependency) Completed(log job.Logger) (bool, error) {
	if d.IsEmpty() {
		return false, nil
	}
	all := true
	for _, j := range d.Jobs {
		ok, err := job.Completed(j, log)
		if err != nil {
			return false, err
		}
		all = all && ok
	}
	return all, nil
}

// Successful reports whether every matched job concluded successfully.
// Only meaningful once Completed returned true.
func (d Dependency) Successful(log job.Logger) (bool, error) {
	if d.IsEmpty() {
		return false, nil
	}
	all := true
	for _, j := range d.Jobs {
		ok, err := job.Successful(j, d.IgnoreSkipped, log)
		if err != nil {
			return false, err
		}
		all = all && ok
	}
	return all, nil
}

// LastJob returns the matched job that finished last. Jobs without a
// completion time sort as the zero time; ties keep list order.
func (d Dependency) LastJob() (job.Job, bool) {
	if d.IsEmpty() {
		return job.Job{}, false
	}
	jobs := make([]job.Job, len(d.Jobs))
	copy(jobs, d.Jobs)
	sort.SliceStable(jobs, func(a, b int) bool {
		return completedAt(jobs[a]) > completedAt(jobs[b])
	})
	return jobs[0], true
}

func completedAt(j job.Job) int64 {
	if j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.UnixNano()
}
