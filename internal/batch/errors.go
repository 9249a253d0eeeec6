package batch

import "fmt"

// ContractViolation wraps a panic recovered while constructing or running
// a Solver for one instance — tsolve reserves panics for contract
// violations (spec.md §7: bad variable count, out-of-range constraint
// references, a malformed may_equal table), which a batch run must not
// let bring down sibling instances.
type ContractViolation struct {
	Instance string
	Reason   any
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("batch: instance %s: contract violation: %v", e.Instance, e.Reason)
}
