// Package job models the jobs of a CI run and classifies their lifecycle.
//
// Status and conclusion are closed enums. Values the remote system reports
// outside the known set decode into an explicit unknown variant that keeps
// the raw string, so classification can fail loudly instead of falling
// through.
package job

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle phase of a job or step.
type Status int

const (
	StatusUnknown Status = iota
	StatusQueued
	StatusInProgress
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusQueued:     "queued",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
}

// ParseStatus maps the wire value to a Status. Unrecognized values map to
// StatusUnknown.
func ParseStatus(s string) Status {
	for st, name := range statusNames {
		if name == s {
			return st
		}
	}
	return StatusUnknown
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Conclusion is the terminal outcome of a completed job.
type Conclusion int

const (
	ConclusionUnknown Conclusion = iota
	ConclusionNone               // null on the wire, job not completed yet
	ConclusionSuccess
	ConclusionFailure
	ConclusionSkipped
	ConclusionCancelled
)

var conclusionNames = map[Conclusion]string{
	ConclusionSuccess:   "success",
	ConclusionFailure:   "failure",
	ConclusionSkipped:   "skipped",
	ConclusionCancelled: "cancelled",
}

// ParseConclusion maps the wire value to a Conclusion.
func ParseConclusion(s string) Conclusion {
	for c, name := range conclusionNames {
		if name == s {
			return c
		}
	}
	return ConclusionUnknown
}

func (c Conclusion) String() string {
	if c == ConclusionNone {
		return "null"
	}
	if name, ok := conclusionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Step is one step of a job. Only used to name the running step in logs.
type Step struct {
	Name   string `json:"name"`
	Status Status `json:"-"`

	RawStatus string `json:"status"`
}

// Job is a read-only view of a job in a run.
type Job struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Status      Status     `json:"-"`
	Conclusion  Conclusion `json:"-"`
	Steps       []Step     `json:"steps,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Raw wire values, kept for error messages.
	RawStatus     string  `json:"status"`
	RawConclusion *string `json:"conclusion"`
}

// List is one snapshot of the jobs of a run.
type List struct {
	TotalCount int   `json:"total_count"`
	Jobs       []Job `json:"jobs"`
}

// UnmarshalJSON decodes a GitHub job and resolves its enums.
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*j = Job(p)
	j.Status = ParseStatus(j.RawStatus)
	if j.RawConclusion == nil {
		j.Conclusion = ConclusionNone
	} else {
		j.Conclusion = ParseConclusion(*j.RawConclusion)
	}
	return nil
}

// UnmarshalJSON decodes a step and resolves its status.
func (s *Step) UnmarshalJSON(data []byte) error {
	type plain Step
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Step(p)
	s.Status = ParseStatus(s.RawStatus)
	return nil
}

// New builds a Job from wire values. Handy for fakes and tests.
func New(name, status, conclusion string) Job {
	j := Job{
		Name:       name,
		RawStatus:  status,
		Status:     ParseStatus(status),
		Conclusion: ConclusionNone,
	}
	if conclusion != "" {
		c := conclusion
		j.RawConclusion = &c
		j.Conclusion = ParseConclusion(conclusion)
	}
	return j
}

// CurrentStep returns the name of the first in-progress step, if any.
func (j Job) CurrentStep() (string, bool) {
	for _, s := range j.Steps {
		if s.Status == StatusInProgress {
			return s.Name, true
		}
	}
	return "", false
}

// conclusionValue renders the raw conclusion for messages.
func (j Job) conclusionValue() string {
	if j.RawConclusion == nil {
		return "null"
	}
	return *j.RawConclusion
}
