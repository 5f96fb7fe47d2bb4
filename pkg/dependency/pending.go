package dependency

import (
	"slices"
	"strings"
)

// Pending is the ordered set of dependency names not yet satisfied.
// It is owned by a single goroutine and only ever shrinks.
type Pending struct {
	names []string
}

// NewPending copies names into a new set, dropping duplicates.
func NewPending(names []string) *Pending {
	p := &Pending{names: make([]string, 0, len(names))}
	for _, n := range names {
		if !slices.Contains(p.names, n) {
			p.names = append(p.names, n)
		}
	}
	return p
}

// Remove deletes name and reports whether it was present.
func (p *Pending) Remove(name string) bool {
	i := slices.Index(p.names, name)
	if i < 0 {
		return false
	}
	p.names = slices.Delete(p.names, i, i+1)
	return true
}

// IsEmpty reports whether every dependency has been satisfied.
func (p *Pending) IsEmpty() bool { return len(p.names) == 0 }

// Len returns the number of pending names.
func (p *Pending) Len() int { return len(p.names) }

// Names returns a copy of the pending names in request order.
func (p *Pending) Names() []string { return slices.Clone(p.names) }

// String renders the set as "[a, b]".
func (p *Pending) String() string {
	return "[" + strings.Join(p.names, ", ") + "]"
}
