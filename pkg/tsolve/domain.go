package tsolve

import "sort"

// NodeSet is an ordered, immutable set of candidate nodes for one variable
// at one level of the search. It is the "cursored domain" spec.md's design
// notes call for: a sorted vector frozen at construction time and walked by
// index, avoiding the iterator-invalidation hazard of mutating a set
// mid-traversal.
//
// Unlike the teacher's BitSetDomain, NodeSet is not bounded by a small
// fixed maxValue: nodes here are arbitrary positive integers (they may be
// hashes, interned symbol IDs, and so on), so membership is backed by a
// sorted slice with binary-search lookup rather than a bitset.
type NodeSet struct {
	values []Node // sorted, deduplicated
}

// newNodeSet builds a NodeSet from values, sorting and deduplicating them.
// The caller's slice is not retained.
func newNodeSet(values []Node) NodeSet {
	if len(values) == 0 {
		return NodeSet{}
	}
	sorted := append([]Node(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return NodeSet{values: out}
}

// Len returns the number of nodes in the set.
func (s NodeSet) Len() int {
	return len(s.values)
}

// At returns the i'th node in ascending order. Behavior is undefined if i
// is out of range.
func (s NodeSet) At(i int) Node {
	return s.values[i]
}

// Has reports whether n is a member of the set.
func (s NodeSet) Has(n Node) bool {
	i := sort.Search(len(s.values), func(i int) bool { return s.values[i] >= n })
	return i < len(s.values) && s.values[i] == n
}

// Slice returns the set's members as a sorted, freshly allocated slice.
func (s NodeSet) Slice() []Node {
	return append([]Node(nil), s.values...)
}

// nodeSetCursor walks a NodeSet index by index, the search state's per-level
// record of "the candidate domain and the next untried value."
type nodeSetCursor struct {
	set NodeSet
	pos int
}

// newCursor returns a cursor positioned at the start of set.
func newCursor(set NodeSet) nodeSetCursor {
	return nodeSetCursor{set: set, pos: 0}
}

// done reports whether every candidate in the cursor's set has been tried.
func (c *nodeSetCursor) done() bool {
	return c.pos >= c.set.Len()
}

// next returns the next untried candidate and advances the cursor. Behavior
// is undefined if done() was true.
func (c *nodeSetCursor) next() Node {
	v := c.set.At(c.pos)
	c.pos++
	return v
}
