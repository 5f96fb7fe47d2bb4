package waiter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout matches any *TimeoutError.
var ErrTimeout = errors.New("timeout exceeded")

// TimeoutError reports the dependencies still pending when the TTL elapsed.
type TimeoutError struct {
	Pending []string
	Minutes int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("error: jobs [%s] did not complete in %d minutes", strings.Join(e.Pending, ", "), e.Minutes)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
