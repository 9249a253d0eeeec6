// Package tsolve implements a backtracking constraint solver over a ternary
// fact relation. A FactIndex stores ground triplets of positive node
// identifiers and answers partial-pattern lookups; a Solver lazily
// enumerates variable assignments that make every constraint triplet in a
// problem instance resolve to a stored fact.
//
// Nodes, variables, and the "empty" pattern marker share a single signed
// integer encoding in the system this package is modeled on: positive
// values are nodes, non-positive values are variables (variable k is
// represented as -k), and zero doubles as both "unassigned" and "wildcard."
// This package keeps that encoding (for direct fidelity with constraint
// triplets as they're authored) but wraps it in named types at the
// boundaries where the distinction matters, so callers don't have to carry
// the sign convention in their heads.
package tsolve

import "fmt"

// Node is a strictly positive integer identifying an atom in the domain of
// discourse. Zero and negative values are never valid Nodes; they appear
// only inside Term, where they mean "variable" or "wildcard" depending on
// context.
type Node int

// IsValid reports whether n is a legal stored or assigned node value.
func (n Node) IsValid() bool {
	return n > 0
}

// Variable identifies one of a problem instance's N decision variables.
// Variable indices are 0-based; Term encodes variable k as -k.
type Variable int

// Term is one position of a Triplet: either a positive Node, or a
// non-positive encoding of a Variable (Term(-k) means Variable(k)), or
// TermEmpty (zero), which means "wildcard" in a lookup pattern and
// "unassigned" in a constraint that hasn't been visited yet.
type Term int

// TermEmpty is the wildcard/unassigned marker.
const TermEmpty Term = 0

// NodeTerm returns the Term encoding of a concrete node.
func NodeTerm(n Node) Term {
	return Term(n)
}

// VarTerm returns the Term encoding of variable index k.
func VarTerm(k Variable) Term {
	return Term(-int(k))
}

// IsVariable reports whether t encodes a variable or the empty marker
// (t <= 0), mirroring the source convention that 0 is itself a variable
// index (variable 0) as well as the empty marker; context disambiguates.
func (t Term) IsVariable() bool {
	return t <= 0
}

// IsNode reports whether t encodes a concrete, positive node.
func (t Term) IsNode() bool {
	return t > 0
}

// Node returns t as a Node. Behavior is undefined (panics) if !t.IsNode().
func (t Term) Node() Node {
	if !t.IsNode() {
		panic(fmt.Sprintf("tsolve: Term(%d) does not encode a node", int(t)))
	}
	return Node(t)
}

// Variable returns the variable index encoded by t. Behavior is undefined
// (panics) if t does not encode a variable (t > 0).
func (t Term) Variable() Variable {
	if t > 0 {
		panic(fmt.Sprintf("tsolve: Term(%d) does not encode a variable", int(t)))
	}
	return Variable(-int(t))
}

// Triplet is an ordered triple of terms. A Triplet is a Fact when all three
// positions are positive nodes, and a constraint when at least one position
// is a variable.
type Triplet [3]Term

// NewFact builds a Triplet from three concrete nodes.
func NewFact(a, b, c Node) Triplet {
	return Triplet{Term(a), Term(b), Term(c)}
}

// IsGround reports whether every position of t is a positive node, i.e.
// whether t is a Fact rather than a constraint.
func (t Triplet) IsGround() bool {
	return t[0].IsNode() && t[1].IsNode() && t[2].IsNode()
}

// Pattern is a Triplet used to query a FactIndex: each position is either a
// positive Node (must match) or TermEmpty (wildcard).
type Pattern = Triplet

func (t Triplet) String() string {
	return fmt.Sprintf("(%d, %d, %d)", int(t[0]), int(t[1]), int(t[2]))
}
