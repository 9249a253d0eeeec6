package main

import (
	"errors"
	"fmt"
)

// contractViolationError wraps a panic recovered from the core tsolve
// package. tsolve panics only for contract violations (spec.md §7: bad
// variable count, out-of-range constraint references, a malformed
// may_equal table) — never for an unsatisfiable or exhausted instance,
// which are reported as ordinary (non-panicking) outcomes.
type contractViolationError struct {
	Reason any
}

func (e *contractViolationError) Error() string {
	return fmt.Sprintf("contract violation: %v", e.Reason)
}

// errUnsatisfiable is returned by run when a problem's solver is invalid
// right after construction (a ground constraint is not a stored fact), and
// by batch when no problem in the directory produced an assignment.
var errUnsatisfiable = errors.New("instance has no satisfying assignment")
