package waiter

import (
	"time"

	"github.com/dkoosis/waitfor/pkg/dependency"
)

// MaxTTL is the ceiling, in minutes, applied to Config.TTL unless
// AllowTTLOverride is set.
const MaxTTL = 15

// DefaultInterval is the poll interval used when Config.Interval is zero.
const DefaultInterval = 10 * time.Second

// Config is the immutable input of one wait.
type Config struct {
	Jobs             []string
	Mode             dependency.MatchMode
	IgnoreSkipped    bool
	Interval         time.Duration
	TTL              int // minutes
	AllowTTLOverride bool
	OutputFiles      []string
}

// effectiveTTL applies the MaxTTL ceiling and reports whether it clamped.
func (c Config) effectiveTTL() (int, bool) {
	if c.TTL > MaxTTL && !c.AllowTTLOverride {
		return MaxTTL, true
	}
	return c.TTL, false
}
