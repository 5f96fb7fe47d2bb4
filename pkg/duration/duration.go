// Package duration formats elapsed wall-clock time for run summaries.
package duration

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Compact renders the time between since and now as "1d2h3m4s".
// Leading zero units are omitted; seconds are always present.
func Compact(since, now time.Time) string {
	return Format(now.Sub(since))
}

// Format renders d in the Compact layout, rounded to whole seconds.
// Negative durations are formatted by magnitude.
func Format(d time.Duration) string {
	d = d.Abs().Round(time.Second)

	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if days+hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if days+hours+minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}
