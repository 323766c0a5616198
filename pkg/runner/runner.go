// Package runner executes units sequentially in a planned order.
//
// The runner is the side-effect boundary of runstack: it knows nothing about
// ordering beyond the sequence it is handed, and delegates the actual work to
// an [Executor]. The default policy aborts on the first failure so that no
// unit ever runs after one of its prerequisites has failed. With
// [Options.ContinueOnFailure] the runner keeps going, but still skips every
// unit whose direct prerequisite failed or was skipped - the dependency
// guarantee holds under both policies.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runstack/runstack/pkg/depgraph"
)

// ErrExecution is the sentinel wrapped by every [*UnitError].
var ErrExecution = errors.New("unit execution failed")

// UnitError reports the failure of a single unit's side effect.
type UnitError struct {
	Unit string
	Err  error
}

// Error implements the error interface.
func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %s: %v", e.Unit, e.Err)
}

// Unwrap returns the underlying cause. errors.Is(err, ErrExecution) also
// holds for every UnitError.
func (e *UnitError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExecution.
func (e *UnitError) Is(target error) bool { return target == ErrExecution }

// Executor performs the side effect of a single unit. It is treated as a
// black box that may block; implementations should honor ctx.
type Executor interface {
	Execute(ctx context.Context, unit string) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, unit string) error

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, unit string) error { return f(ctx, unit) }

// Status describes the outcome of one unit within a run.
type Status int

// Unit outcomes reported through [Event].
const (
	StatusRunning Status = iota
	StatusOK
	StatusFailed
	StatusSkipped
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Event describes a unit state change during a run.
type Event struct {
	RunID   string        // identifier shared by all events of one run
	Unit    string        // unit the event concerns
	Index   int           // zero-based position in the order
	Total   int           // number of units in the order
	Status  Status        // new status
	Err     error         // failure cause (StatusFailed) or skip reason (StatusSkipped)
	Elapsed time.Duration // execution time (StatusOK and StatusFailed only)
}

// Options configures a run.
type Options struct {
	// ContinueOnFailure keeps the run going after a unit fails. Units
	// whose direct prerequisites failed or were skipped are still skipped
	// to uphold the dependency guarantee.
	ContinueOnFailure bool

	// Deps supplies each unit's direct prerequisites for skip
	// propagation. Only consulted with ContinueOnFailure; may be nil
	// otherwise.
	Deps depgraph.Map

	// OnEvent, when set, observes every unit state change. Called
	// synchronously from the run goroutine.
	OnEvent func(Event)
}

// Result summarizes a run.
type Result struct {
	RunID     string
	Completed []string
	Failed    []string
	Skipped   []string
}

// Run executes the units of order in sequence. Under the default policy the
// first failure aborts the run and is returned as a [*UnitError]; the
// remaining units are left untouched (not even marked skipped). With
// ContinueOnFailure all runnable units execute and the returned error wraps
// the first failure while naming every failed unit.
//
// Run checks ctx before each unit and stops with ctx.Err() once cancelled.
func Run(ctx context.Context, order []string, exec Executor, opts Options) (Result, error) {
	res := Result{RunID: uuid.NewString()}

	emit := func(ev Event) {
		if opts.OnEvent != nil {
			ev.RunID = res.RunID
			ev.Total = len(order)
			opts.OnEvent(ev)
		}
	}

	unusable := make(map[string]bool) // failed or skipped units
	var firstErr *UnitError

	for i, unit := range order {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if opts.ContinueOnFailure {
			if blocked := blockedBy(unit, opts.Deps, unusable); blocked != "" {
				unusable[unit] = true
				res.Skipped = append(res.Skipped, unit)
				emit(Event{Unit: unit, Index: i, Status: StatusSkipped,
					Err: fmt.Errorf("prerequisite %s did not complete", blocked)})
				continue
			}
		}

		emit(Event{Unit: unit, Index: i, Status: StatusRunning})
		start := time.Now()
		err := exec.Execute(ctx, unit)
		elapsed := time.Since(start)

		if err != nil {
			uerr := &UnitError{Unit: unit, Err: err}
			unusable[unit] = true
			res.Failed = append(res.Failed, unit)
			emit(Event{Unit: unit, Index: i, Status: StatusFailed, Err: err, Elapsed: elapsed})

			if !opts.ContinueOnFailure {
				return res, uerr
			}
			if firstErr == nil {
				firstErr = uerr
			}
			continue
		}

		res.Completed = append(res.Completed, unit)
		emit(Event{Unit: unit, Index: i, Status: StatusOK, Elapsed: elapsed})
	}

	if firstErr != nil {
		return res, fmt.Errorf("execution failed for %s: %w", strings.Join(res.Failed, ", "), firstErr)
	}
	return res, nil
}

// blockedBy returns the first direct prerequisite of unit that failed or
// was skipped, or "" if the unit is runnable.
func blockedBy(unit string, deps depgraph.Map, unusable map[string]bool) string {
	for _, dep := range deps[unit] {
		if unusable[dep] {
			return dep
		}
	}
	return ""
}
