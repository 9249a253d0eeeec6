// Package registry provides a symbol table translating between
// human-readable atom names and the positive tsolve.Node identifiers the
// core solver operates on.
//
// The reference implementation this is modeled on (original_source's
// CPPStructure) keeps a forward dictionary (name -> numeric id) and a
// reverse slice (id -> name) side by side with the fact structure itself,
// built once from the set of names in use and consulted on every fact and
// pattern translation. Registry reproduces that shape: names are assigned
// ids in first-seen order starting at 1 (0 and negative ids are reserved
// by tsolve for variables and the wildcard marker), and the mapping is
// append-only — this registry never frees or renumbers an id, matching the
// source's own "dictionary_back is a plain growing list" behavior.
//
// Registry makes no variable-ordering or equality decisions; it is purely
// a naming layer between caller-facing text and the core's integer
// encoding.
package registry

import (
	"fmt"
	"sync"

	"github.com/gitrdm/tsolve/pkg/tsolve"
)

// Registry is a bidirectional, append-only mapping between atom names and
// tsolve.Node identifiers. The zero value is not usable; construct with
// New.
type Registry struct {
	mu      sync.RWMutex
	forward map[string]tsolve.Node
	back    []string // back[i-1] is the name of Node(i)
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		forward: make(map[string]tsolve.Node),
	}
}

// Intern returns the Node assigned to name, assigning it the next unused
// id if this is the first time name has been seen.
func (r *Registry) Intern(name string) tsolve.Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.forward[name]; ok {
		return n
	}
	n := tsolve.Node(len(r.back) + 1)
	r.forward[name] = n
	r.back = append(r.back, name)
	return n
}

// InternAll interns every name in names, in order, and returns the
// corresponding Nodes.
func (r *Registry) InternAll(names []string) []tsolve.Node {
	out := make([]tsolve.Node, len(names))
	for i, name := range names {
		out[i] = r.Intern(name)
	}
	return out
}

// Lookup returns the Node already assigned to name, if any.
func (r *Registry) Lookup(name string) (tsolve.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.forward[name]
	return n, ok
}

// Name returns the name interned for n. It panics if n was never interned
// by this registry — a caller holding a Node not obtained from Intern is a
// contract violation.
func (r *Registry) Name(n tsolve.Node) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := int(n) - 1
	if i < 0 || i >= len(r.back) {
		panic(fmt.Sprintf("registry: Node(%d) was never interned", n))
	}
	return r.back[i]
}

// Translate converts an assignment of Nodes (as returned by
// tsolve.Solver.NextAssignment) back to names, in the same order.
func (r *Registry) Translate(assignment []tsolve.Node) []string {
	out := make([]string, len(assignment))
	for i, n := range assignment {
		out[i] = r.Name(n)
	}
	return out
}

// Len returns the number of distinct names interned so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.back)
}
