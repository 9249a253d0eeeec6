package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/tsolve/internal/instance"
)

const testInstanceYAML = `
facts:
  - [alice, parentOf, bob]
  - [dave, parentOf, bob]
problems:
  parents_of_bob:
    variables: [X]
    constraints:
      - [X, parentOf, bob]
`

func writeTestInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kinship.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testInstanceYAML), 0o644))
	return path
}

func TestSolveGuardedReturnsEveryAssignment(t *testing.T) {
	f, err := instance.Load(writeTestInstance(t))
	require.NoError(t, err)

	results, err := solveGuarded(f, f.Problems["parents_of_bob"], 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSolveGuardedRespectsLimit(t *testing.T) {
	f, err := instance.Load(writeTestInstance(t))
	require.NoError(t, err)

	results, err := solveGuarded(f, f.Problems["parents_of_bob"], 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSolveGuardedReportsUnsatisfiableAtConstruction(t *testing.T) {
	// A ground constraint (no variable position) that isn't a stored fact
	// fails NewSolver's up-front validation, so IsValid() is false before
	// any search happens — the "unsatisfiable" case, distinct from a
	// validly-constructed solver that simply exhausts its search.
	unsatPath := filepath.Join(t.TempDir(), "unsat.yaml")
	require.NoError(t, os.WriteFile(unsatPath, []byte(`
facts:
  - [alice, parentOf, bob]
problems:
  impossible:
    variables: [X]
    constraints:
      - [alice, parentOf, carol]
`), 0o644))
	f2, err := instance.Load(unsatPath)
	require.NoError(t, err)

	_, err = solveGuarded(f2, f2.Problems["impossible"], 0)
	assert.ErrorIs(t, err, errUnsatisfiable)
}

func TestSolveGuardedReturnsEmptyWithoutErrorWhenSearchExhaustsNaturally(t *testing.T) {
	// The only constraint here mentions a variable, so construction
	// succeeds and IsValid() is true; the search then exhausts with zero
	// matches because no fact satisfies [X, parentOf, carol]. This must
	// NOT be reported as errUnsatisfiable.
	path := filepath.Join(t.TempDir(), "exhausts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
facts:
  - [alice, parentOf, bob]
problems:
  no_match:
    variables: [X]
    constraints:
      - [X, parentOf, carol]
`), 0o644))
	f2, err := instance.Load(path)
	require.NoError(t, err)

	results, err := solveGuarded(f2, f2.Problems["no_match"], 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIsInstanceFile(t *testing.T) {
	assert.True(t, isInstanceFile("kinship.yaml"))
	assert.True(t, isInstanceFile("kinship.yml"))
	assert.False(t, isInstanceFile("kinship.txt"))
}
