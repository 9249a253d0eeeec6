package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/tsolve/pkg/tsolve"
)

func TestInternAssignsStableIDs(t *testing.T) {
	r := New()

	a := r.Intern("alice")
	b := r.Intern("bob")
	aAgain := r.Intern("alice")

	assert.Equal(t, a, aAgain)
	assert.NotEqual(t, a, b)
	assert.True(t, a.IsValid())
	assert.True(t, b.IsValid())
}

func TestInternAllPreservesOrder(t *testing.T) {
	r := New()
	nodes := r.InternAll([]string{"alice", "bob", "alice"})

	require.Len(t, nodes, 3)
	assert.Equal(t, nodes[0], nodes[2])
	assert.NotEqual(t, nodes[0], nodes[1])
}

func TestLookupReportsAbsence(t *testing.T) {
	r := New()
	r.Intern("alice")

	_, ok := r.Lookup("bob")
	assert.False(t, ok)

	n, ok := r.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, tsolve.Node(1), n)
}

func TestNamePanicsOnUnknownNode(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.Name(tsolve.Node(99))
	})
}

func TestTranslateRoundTrips(t *testing.T) {
	r := New()
	alice := r.Intern("alice")
	bob := r.Intern("bob")

	names := r.Translate([]tsolve.Node{bob, alice})
	assert.Equal(t, []string{"bob", "alice"}, names)
}

func TestLenCountsDistinctNames(t *testing.T) {
	r := New()
	r.InternAll([]string{"alice", "bob", "alice", "carol"})
	assert.Equal(t, 3, r.Len())
}
