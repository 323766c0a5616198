package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle is returned by [Graph.Sort] when the declared prerequisites
	// contain at least one cycle and no total order exists. Use errors.As
	// with [*CycleError] to recover the units involved.
	ErrCycle = errors.New("dependency cycle")

	// ErrUnknownTarget is returned by [Prerequisites] and [PlanFor] when the
	// requested target appears neither as a declared unit nor as a
	// prerequisite of one.
	ErrUnknownTarget = errors.New("unknown unit")
)

// CycleError reports the units that could not be ordered. Units contains
// every unit participating in or blocked by a cycle, sorted by identifier.
type CycleError struct {
	Units []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: no valid order for %s", strings.Join(e.Units, ", "))
}

// Unwrap returns ErrCycle for errors.Is compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// UnknownTargetError reports a target absent from the unit set.
type UnknownTargetError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown unit %q: not declared and not referenced as a prerequisite", e.Name)
}

// Unwrap returns ErrUnknownTarget for errors.Is compatibility.
func (e *UnknownTargetError) Unwrap() error { return ErrUnknownTarget }
