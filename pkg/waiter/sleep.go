package waiter

import (
	"context"
	"time"
)

// sleep blocks for d or until ctx is done. A completed sleep logs
// "<label> done" at debug level.
func (e *Engine) sleep(ctx context.Context, d time.Duration, label string) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		e.log.Debug(label + " done")
		return nil
	}
}
