package job

import "fmt"

// Logger receives the informational lines emitted while classifying.
type Logger interface {
	Info(msg string)
}

const unknownStep = "🤷‍♂️"

// Completed reports whether the job reached its terminal status.
// Queued and in-progress jobs are logged. A status outside the known set is
// an error and must abort the wait.
func Completed(j Job, log Logger) (bool, error) {
	switch j.Status {
	case StatusCompleted:
		return true, nil
	case StatusInProgress:
		step, ok := j.CurrentStep()
		if !ok {
			step = unknownStep
		}
		log.Info(fmt.Sprintf("job %q in progress ⌛ current step %q", j.Name, step))
		return false, nil
	case StatusQueued:
		log.Info(fmt.Sprintf("job %q not started yet 👀", j.Name))
		return false, nil
	case StatusUnknown:
	}
	return false, &Error{Kind: ErrUnknownStatus, Job: j.Name, Value: j.RawStatus}
}

// Successful reports whether a completed job counts as satisfied.
// Skipped jobs count only when ignoreSkipped is set. Failed, cancelled and
// unrecognized conclusions are errors.
func Successful(j Job, ignoreSkipped bool, log Logger) (bool, error) {
	switch j.Conclusion {
	case ConclusionSuccess:
		log.Info(fmt.Sprintf("job %q completed with success ✅", j.Name))
		return true, nil
	case ConclusionSkipped:
		if ignoreSkipped {
			log.Info(fmt.Sprintf("ignoring skipped job %q 😒", j.Name))
			return true, nil
		}
		return false, &Error{Kind: ErrSkipped, Job: j.Name}
	case ConclusionFailure:
		return false, &Error{Kind: ErrFailed, Job: j.Name}
	case ConclusionCancelled:
		return false, &Error{Kind: ErrCancelled, Job: j.Name}
	case ConclusionNone, ConclusionUnknown:
	}
	return false, &Error{Kind: ErrUnknownConclusion, Job: j.Name, Value: j.conclusionValue()}
}
