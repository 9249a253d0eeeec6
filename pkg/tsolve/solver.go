// This file implements Solver: depth-first backtracking search over a
// problem instance defined by a FactIndex, a variable count, an ordered
// list of constraint triplets, and a per-variable "may-equal" table.
//
// # Architecture
//
// Unlike the teacher's Solver (pkg/minikanren/solver.go), which separates
// an immutable Model from a copy-on-write SolverState chain sized for
// parallel search, this Solver is strictly single-threaded (spec.md §5: "no
// parallel search") and keeps one mutable state per variable level rather
// than a persistent chain — there is exactly one search in flight, so the
// teacher's structural-sharing machinery buys nothing here. What survives
// from the teacher's shape is the per-level state record (cursor into a
// frozen candidate set) and the explicit, non-recursive assign/unassign
// pair that walks it.
//
// Enumeration is lazy: NextAssignment returns one satisfying assignment per
// call by resuming the search exactly where the previous call left off,
// via the persisted cursor in each level's state.
package tsolve

import "fmt"

// MayEqualSet is the set of earlier variable indices a variable is
// permitted to share a node value with. Absent peers force inequality; see
// Solver's inequality filter in getOptions.
type MayEqualSet map[Variable]bool

// levelState is the per-variable search-tree record: the candidate domain
// computed on entry to this level, and a cursor into it recording the next
// untried value.
type levelState struct {
	cursor nodeSetCursor
}

// Solver performs depth-first backtracking search over a problem instance
// snapshotted from a FactIndex. A Solver instance owns mutable search
// state and is not safe to share across goroutines (spec.md §5); to search
// many instances concurrently, construct one Solver per instance (see
// internal/batch).
type Solver struct {
	index *FactIndex
	n     int

	// constraints holds the parametric constraints (those mentioning at
	// least one variable) in their original, unsubstituted form. Ground
	// constraints are checked once at construction and then discarded.
	constraints []Triplet

	// working holds a mutable copy of constraints in which already-assigned
	// variable positions have been rewritten to their assigned node.
	// Positions for variables at or after currentIndex retain the variable
	// encoding.
	working []Triplet

	// varToConstraints[k] lists the indices into constraints/working that
	// mention variable k.
	varToConstraints [][]int

	mayEqual []MayEqualSet

	assignment []Node
	states     []levelState

	// currentIndex is the variable currently being assigned. It advances on
	// descent and retreats on backtrack; N means "assignment complete," -1
	// means "search exhausted."
	currentIndex int

	valid bool
}

// NewSolver constructs a Solver for the given fact index, variable count,
// and ordered constraint list, with the supplied may-equal table.
//
// n must be at least 1. Every position of every constraint must be either a
// positive node or a valid variable encoding in [0, n). mayEqual must have
// exactly n entries, and mayEqual[k] must reference only indices j < k.
// Violating any of these is a contract violation (spec.md §7) and panics.
//
// Ground constraints (no variable position) are validated immediately
// against index; if any is not a stored fact, the instance is marked
// invalid (IsValid() returns false) and construction stops without
// registering any later constraint, mirroring the reference
// implementation's early-exit on the first infeasible ground constraint.
func NewSolver(index *FactIndex, n int, constraints []Triplet, mayEqual []MayEqualSet) *Solver {
	if n < 1 {
		panic(fmt.Sprintf("tsolve: NewSolver: n must be >= 1, got %d", n))
	}
	if len(mayEqual) != n {
		panic(fmt.Sprintf("tsolve: NewSolver: mayEqual has %d entries, want %d", len(mayEqual), n))
	}
	for k, peers := range mayEqual {
		for j := range peers {
			if int(j) >= k {
				panic(fmt.Sprintf("tsolve: NewSolver: mayEqual[%d] references %d, which is not < %d", k, j, k))
			}
		}
	}
	for ci, c := range constraints {
		for pos, t := range c {
			if t.IsNode() {
				continue
			}
			k := -int(t)
			if k < 0 || k >= n {
				panic(fmt.Sprintf("tsolve: NewSolver: constraint %d position %d references variable %d, out of range [0,%d)", ci, pos, k, n))
			}
		}
	}

	s := &Solver{
		index:            index,
		n:                n,
		varToConstraints: make([][]int, n),
		mayEqual:         mayEqual,
		assignment:       make([]Node, n),
		states:           make([]levelState, n),
		currentIndex:     0,
		valid:            true,
	}

	for _, c := range constraints {
		anyVariable := false
		for _, t := range c {
			if t.IsVariable() {
				k := Variable(-int(t))
				s.varToConstraints[k] = append(s.varToConstraints[k], len(s.constraints))
				anyVariable = true
			}
		}
		if anyVariable {
			s.constraints = append(s.constraints, c)
		} else if !index.IsTrue(c) {
			s.valid = false
			break
		}
	}

	if s.valid {
		s.working = append([]Triplet(nil), s.constraints...)
		s.getOptions()
	}
	return s
}

// IsValid reports whether the instance is still (or was ever) satisfiable:
// false after construction means a ground constraint failed; false after
// search means every assignment has already been enumerated.
func (s *Solver) IsValid() bool {
	return s.valid
}

// NextAssignment returns the next satisfying assignment, or nil once the
// instance is unsatisfiable or every assignment has been produced. The
// returned slice has length n; position k is the node assigned to variable
// k. Each call resumes the search from where the previous call left off.
func (s *Solver) NextAssignment() []Node {
	if !s.valid {
		return nil
	}

	for s.currentIndex >= 0 {
		state := &s.states[s.currentIndex]

		if state.cursor.done() {
			s.unassign()
			continue
		}

		v := state.cursor.next()
		s.assign(v)

		if s.currentIndex == s.n {
			result := append([]Node(nil), s.assignment...)
			s.unassign()
			return result
		}

		s.getOptions()
	}

	s.valid = false
	return nil
}

// currentVarTerm returns the variable index at currentIndex, encoded as a
// Term (i.e. -currentIndex).
func (s *Solver) currentVarTerm() Term {
	return VarTerm(Variable(s.currentIndex))
}

// assign records v as the value of the current variable, substitutes it
// into every working constraint that mentions the variable, and advances
// to the next level.
func (s *Solver) assign(v Node) {
	s.assignment[s.currentIndex] = v
	varTerm := s.currentVarTerm()
	for _, ci := range s.varToConstraints[s.currentIndex] {
		for j := 0; j < 3; j++ {
			if s.working[ci][j] == varTerm {
				s.working[ci][j] = Term(v)
			}
		}
	}
	s.currentIndex++
}

// unassign retreats to the previous level, restoring the variable encoding
// in every working constraint that mentions it. If currentIndex falls
// below zero, the search is exhausted and there is nothing to restore.
func (s *Solver) unassign() {
	s.currentIndex--
	if s.currentIndex < 0 {
		return
	}
	varTerm := s.currentVarTerm()
	for _, ci := range s.varToConstraints[s.currentIndex] {
		for j := 0; j < 3; j++ {
			if s.constraints[ci][j] == varTerm {
				s.working[ci][j] = varTerm
			}
		}
	}
}

// getOptions computes the candidate domain for the variable at
// currentIndex: the intersection, over every constraint mentioning that
// variable, of the set of nodes each constraint's fact matches induce for
// it, then removes values already claimed by earlier variables that this
// variable may not equal.
//
// If the variable is mentioned by no constraint (var_to_constraints empty
// after substitution), the resulting domain is empty by convention — see
// spec.md §9's discussion of this as a probable source defect that this
// implementation preserves rather than silently patches.
func (s *Solver) getOptions() {
	if s.currentIndex >= s.n || s.currentIndex < 0 {
		return
	}
	varTerm := s.currentVarTerm()

	var options map[Node]bool
	initialized := false

	for _, ci := range s.varToConstraints[s.currentIndex] {
		emptied := s.working[ci]
		var holeIsVar [3]bool
		for j := 0; j < 3; j++ {
			holeIsVar[j] = emptied[j] == varTerm
			if emptied[j].IsVariable() {
				emptied[j] = TermEmpty
			}
		}

		local := make(map[Node]bool)
		for _, fact := range s.index.Lookup(emptied) {
			var choice Node
			for j := 0; j < 3; j++ {
				if !holeIsVar[j] {
					continue
				}
				factNode := fact[j].Node()
				if choice == 0 {
					choice = factNode
				} else if choice != factNode {
					// Two positions pinned to this variable disagree on the
					// fact's value; this fact contributes nothing. Stop
					// scanning immediately (spec.md §9 preserves this exact
					// short-circuit rather than continuing to check other
					// positions).
					choice = 0
					break
				}
			}
			if choice > 0 && (!initialized || options[choice]) {
				local[choice] = true
			}
		}

		options = local
		initialized = true
		if len(options) == 0 {
			break
		}
	}

	// Inequality filter: may_equal is consulted only for the variable
	// currently being assigned, never symmetrically (spec.md §4.2.3, §9).
	peers := s.mayEqual[s.currentIndex]
	for j := 0; j < s.currentIndex; j++ {
		if !peers[Variable(j)] {
			delete(options, s.assignment[j])
		}
	}

	values := make([]Node, 0, len(options))
	for v := range options {
		values = append(values, v)
	}
	s.states[s.currentIndex] = levelState{cursor: newCursor(newNodeSet(values))}
}
