// Package dependency maps requested dependency names onto the jobs of a run
// and decides when a dependency is satisfied.
package dependency

import (
	"errors"
	"strings"

	"github.com/dkoosis/waitfor/pkg/job"
)

// MatchMode selects how a dependency name is compared to job names.
// One mode applies to a whole wait.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchPrefix
	MatchSuffix
)

func (m MatchMode) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchSuffix:
		return "suffix"
	default:
		return "exact"
	}
}

// Label is the suffix used in the "checking status" group header.
func (m MatchMode) Label() string {
	switch m {
	case MatchPrefix:
		return "with prefix"
	case MatchSuffix:
		return "with suffix"
	default:
		return ""
	}
}

// ErrConflictingMatch is returned when both prefix and suffix matching are
// requested.
var ErrConflictingMatch = errors.New("prefix and suffix are mutually exclusive")

// ParseMatchMode resolves the prefix/suffix flags into a mode.
// Both flags set is an error.
func ParseMatchMode(prefix, suffix bool) (MatchMode, error) {
	switch {
	case prefix && suffix:
		return MatchExact, ErrConflictingMatch
	case prefix:
		return MatchPrefix, nil
	case suffix:
		return MatchSuffix, nil
	default:
		return MatchExact, nil
	}
}

// Matches reports whether jobName satisfies name under m.
func (m MatchMode) Matches(jobName, name string) bool {
	switch m {
	case MatchPrefix:
		return strings.HasPrefix(jobName, name)
	case MatchSuffix:
		return strings.HasSuffix(jobName, name)
	default:
		return jobName == name
	}
}

// Match selects the jobs matching name, keeping list order.
func Match(mode MatchMode, name string, jobs []job.Job, ignoreSkipped bool) Dependency {
	var matched []job.Job
	for _, j := range jobs {
		if mode.Matches(j.Name, name) {
			matched = append(matched, j)
		}
	}
	return Dependency{Name: name, Jobs: matched, IgnoreSkipped: ignoreSkipped}
}
