// Package waiter waits for the dependencies of a CI run to finish.
//
// An Engine polls the job list of the current run, removes each dependency
// from its pending set once all matching jobs completed successfully, and
// races that loop against a TTL timer. When every dependency is satisfied it
// merges the configured output files and reports them as one value.
package waiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkoosis/waitfor/pkg/dependency"
	"github.com/dkoosis/waitfor/pkg/duration"
	"github.com/dkoosis/waitfor/pkg/outputs"
)

const ttlWarning = "Overwriting ttl to 15 minutes. If dependencies require more than 15 minutes to finish perhaps the dependee jobs should not prestart"

// Option customizes an Engine.
type Option func(*Engine)

// WithOnEvent registers a callback for progress events.
func WithOnEvent(fn func(Event)) Option {
	return func(e *Engine) { e.onEvent = fn }
}

// WithClock overrides the wall clock used for the elapsed-time summary.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine runs one wait. It is not reusable.
type Engine struct {
	cfg      Config
	ttl      int
	minute   time.Duration
	interval time.Duration

	lister  JobLister
	fetcher outputs.Fetcher
	log     Logger
	report  Reporter
	onEvent func(Event)
	now     func() time.Time

	// owned by the polling goroutine until Run has drained it
	pending   *dependency.Pending
	summaries []Summary
}

// New builds an Engine. A TTL above MaxTTL is clamped with a warning unless
// cfg.AllowTTLOverride is set. fetcher may be nil when cfg.OutputFiles is
// empty.
func New(cfg Config, lister JobLister, fetcher outputs.Fetcher, log Logger, report Reporter, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		minute:   time.Minute,
		interval: cfg.Interval,
		lister:   lister,
		fetcher:  fetcher,
		log:      log,
		report:   report,
		now:      time.Now,
		pending:  dependency.NewPending(cfg.Jobs),
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}
	var clamped bool
	e.ttl, clamped = cfg.effectiveTTL()
	if clamped {
		log.Warning(ttlWarning)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TTL returns the effective time-to-live in minutes.
func (e *Engine) TTL() int { return e.ttl }

// Summaries returns the satisfied dependencies in satisfaction order.
// Only valid after Run returned.
func (e *Engine) Summaries() []Summary {
	out := make([]Summary, len(e.summaries))
	copy(out, e.summaries)
	return out
}

// Start runs the wait to completion. On success it logs the run summary.
// On failure it calls SetFailed once with the error message and returns the
// same error.
func (e *Engine) Start(ctx context.Context) error {
	started := e.now()
	if err := e.Run(ctx); err != nil {
		e.report.SetFailed(err.Error())
		return err
	}
	for _, s := range e.summaries {
		e.log.Info(s.String())
	}
	e.log.Info(fmt.Sprintf("took %s, all job dependencies completed with success 🎉", duration.Compact(started, e.now())))
	return nil
}

// Run races the polling loop against the TTL timer and reports the merged
// outputs when the loop wins.
func (e *Engine) Run(ctx context.Context) error {
	taskCtx, cancelTask := context.WithCancel(ctx)
	defer cancelTask()
	timeoutCtx, cancelTimeout := context.WithCancel(ctx)
	defer cancelTimeout()

	e.emit(Event{Type: EventStarted, Pending: e.pending.Names()})
	e.log.StartGroup(e.groupLabel())

	type result struct {
		merged map[string]any
		err    error
	}
	taskDone := make(chan result, 1)
	timerDone := make(chan error, 1)

	go func() {
		merged, err := e.poll(taskCtx)
		taskDone <- result{merged: merged, err: err}
	}()
	go func() {
		timerDone <- e.sleep(timeoutCtx, time.Duration(e.ttl)*e.minute, "action-timeout")
	}()

	var (
		res      result
		timedOut bool
	)
	select {
	case res = <-taskDone:
		cancelTask()
		cancelTimeout()
		<-timerDone
	case timerErr := <-timerDone:
		cancelTask()
		cancelTimeout()
		<-taskDone
		if timerErr == nil {
			timedOut = true
		} else {
			res.err = timerErr
		}
	}
	e.log.EndGroup()

	err := e.outcome(ctx, res.merged, res.err, timedOut)
	e.emit(Event{Type: EventFinished, Err: err})
	return err
}

// outcome turns the race result into the run error. Only called after both
// goroutines have returned.
func (e *Engine) outcome(ctx context.Context, merged map[string]any, err error, timedOut bool) error {
	switch {
	case timedOut:
		return &TimeoutError{Pending: e.pending.Names(), Minutes: e.ttl}
	case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return fmt.Errorf("error: waiting for jobs %s interrupted: %w", e.pending, err)
	case err != nil:
		return err
	case merged == nil:
		return nil
	}
	value, err := outputs.Encode(merged)
	if err != nil {
		return err
	}
	if err := e.report.SetOutput(outputs.Key, value); err != nil {
		return fmt.Errorf("error: setting %s: %w", outputs.Key, err)
	}
	return nil
}

// poll runs cycles until the pending set is empty, then collects outputs.
func (e *Engine) poll(ctx context.Context) (map[string]any, error) {
	for {
		list, err := e.lister.ListJobs(ctx)
		if err != nil {
			return nil, err
		}
		e.log.Debug(fmt.Sprintf("current run jobs: %d", list.TotalCount))
		e.emit(Event{Type: EventPolled, Total: list.TotalCount})

		satisfied, err := e.evaluate(list.Jobs)
		if err != nil {
			return nil, err
		}
		for _, d := range satisfied {
			if !e.pending.Remove(d.Name) {
				continue
			}
			last, _ := d.LastJob()
			e.summaries = append(e.summaries, Summary{Dependency: d.Name, LastJob: last})
			e.emit(Event{Type: EventSatisfied, Dependency: d.Name, Job: last})
		}
		if e.pending.IsEmpty() {
			break
		}

		e.log.Info(fmt.Sprintf("waiting for jobs %s", e.pending))
		e.emit(Event{Type: EventWaiting, Pending: e.pending.Names()})
		if err := e.sleep(ctx, e.interval, "wait-for-jobs"); err != nil {
			return nil, err
		}
	}
	return e.collect(ctx)
}

// collect merges the configured output files. A nil map means no files
// were configured.
func (e *Engine) collect(ctx context.Context) (map[string]any, error) {
	e.log.Info("getting job outputs")
	if len(e.cfg.OutputFiles) == 0 {
		e.log.Debug("no outputs to fetch")
		return nil, nil
	}
	if e.fetcher == nil {
		return nil, errors.New("error: outputs requested but no output fetcher configured")
	}
	return outputs.Collect(ctx, e.fetcher, e.cfg.OutputFiles, e.log.Warning)
}

func (e *Engine) groupLabel() string {
	label := "checking status of jobs: " + e.pending.String()
	if suffix := e.cfg.Mode.Label(); suffix != "" {
		label += " " + suffix
	}
	return label
}

func (e *Engine) emit(evt Event) {
	if e.onEvent == nil {
		return
	}
	if evt.When.IsZero() {
		evt.When = e.now()
	}
	e.onEvent(evt)
}
