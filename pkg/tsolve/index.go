package tsolve

import "fmt"

// bucketKey is one of the 8 keys a fact is filed under: the fact's triplet
// with an arbitrary subset of positions zeroed out. keyFor(fact, mask)
// for mask in [0, 8) enumerates exactly those 8 keys.
type bucketKey = Triplet

// keyFor returns the bucket key for fact under the given mask. Bit j of
// mask set means "position j is known" (kept); clear means "position j is
// zeroed to the wildcard marker." mask == 0 yields the universal (0,0,0)
// key; mask == 7 yields the fully-keyed fact itself.
func keyFor(fact Triplet, mask uint8) bucketKey {
	var key Triplet
	for j := 0; j < 3; j++ {
		if mask&(1<<uint(j)) != 0 {
			key[j] = fact[j]
		} else {
			key[j] = TermEmpty
		}
	}
	return key
}

// FactIndex stores a set of ternary facts over positive node identifiers
// and answers partial-pattern lookups in O(1) bucket dispatch plus linear
// time in the result size.
//
// Internally it keeps an 8-way inverted index: for a fact (a,b,c), the fact
// is filed under all 8 keys obtained by independently zeroing each
// position. A lookup with a given mask of known positions dispatches
// directly to the one bucket keyed by that mask, at the cost of the
// all-zero bucket duplicating the full fact list (accepted overhead for
// uniformity, per spec.md's design notes).
type FactIndex struct {
	buckets map[bucketKey][]Triplet
	present map[Triplet]bool
}

// NewFactIndex returns an empty FactIndex.
func NewFactIndex() *FactIndex {
	return &FactIndex{
		buckets: make(map[bucketKey][]Triplet),
		present: make(map[Triplet]bool),
	}
}

// Add inserts fact into the index. fact must not already be present and
// must be ground (all three positions positive nodes); either violation is
// a contract violation and panics, mirroring the source's assert-and-abort
// semantics (spec.md §7).
func (fi *FactIndex) Add(fact Triplet) {
	if !fact.IsGround() {
		panic(fmt.Sprintf("tsolve: FactIndex.Add: %s is not a ground fact", fact))
	}
	if fi.present[fact] {
		panic(fmt.Sprintf("tsolve: FactIndex.Add: fact %s already present", fact))
	}

	fi.present[fact] = true
	for mask := uint8(0); mask < 8; mask++ {
		key := keyFor(fact, mask)
		fi.buckets[key] = append(fi.buckets[key], fact)
	}
}

// AddFact is a convenience wrapper over Add for three concrete nodes.
func (fi *FactIndex) AddFact(a, b, c Node) {
	fi.Add(NewFact(a, b, c))
}

// Remove deletes fact from the index. fact must be present; removing an
// absent fact is a contract violation and panics.
func (fi *FactIndex) Remove(fact Triplet) {
	if !fi.present[fact] {
		panic(fmt.Sprintf("tsolve: FactIndex.Remove: fact %s not present", fact))
	}
	delete(fi.present, fact)

	for mask := uint8(0); mask < 8; mask++ {
		key := keyFor(fact, mask)
		bucket := fi.buckets[key]
		for i, f := range bucket {
			if f == fact {
				bucket[i] = bucket[len(bucket)-1]
				fi.buckets[key] = bucket[:len(bucket)-1]
				break
			}
		}
		if len(fi.buckets[key]) == 0 {
			delete(fi.buckets, key)
		}
	}
}

// RemoveFact is a convenience wrapper over Remove for three concrete nodes.
func (fi *FactIndex) RemoveFact(a, b, c Node) {
	fi.Remove(NewFact(a, b, c))
}

// IsTrue reports whether fact is present in the index.
func (fi *FactIndex) IsTrue(fact Triplet) bool {
	return fi.present[fact]
}

// AllTrue reports whether every fact in facts is present in the index.
func (fi *FactIndex) AllTrue(facts []Triplet) bool {
	for _, f := range facts {
		if !fi.IsTrue(f) {
			return false
		}
	}
	return true
}

// emptyResult is the shared sentinel returned by Lookup when no fact
// matches, avoiding an allocation on the (common, in deep search trees)
// empty-result path.
var emptyResult = []Triplet{}

// Lookup returns every stored fact matching pattern, where each position of
// pattern is either a positive node (must match) or TermEmpty (wildcard).
// The returned slice must not be retained past the next mutating call
// (Add/Remove) on fi.
func (fi *FactIndex) Lookup(pattern Pattern) []Triplet {
	// pattern already has TermEmpty in every wildcard position, which is
	// exactly the shape of a bucket key for its own mask of known positions.
	if facts, ok := fi.buckets[pattern]; ok {
		return facts
	}
	return emptyResult
}
