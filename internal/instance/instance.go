// Package instance loads ternary-fact problem instances from YAML files:
// a shared set of named facts, plus one or more named problems that query
// those facts through caller-named variables.
//
// This has no direct analog in the teacher repo (gokanlogic reads
// programs, not data files); its shape instead follows the original
// Python runtime's own fact-plus-pattern pairing (original_source's
// runtime/pattern.py, runtime/cpp_structure.py), expressed the way this
// repo's other config-bearing packages read YAML (gopkg.in/yaml.v3,
// following the shape used across jinterlante1206-AleutianLocal's config
// loaders).
//
// Variable order within a problem is exactly the order the caller wrote
// in its "variables" list — this package never reorders or chooses a
// search order on the caller's behalf, per spec.md's framing of variable
// ordering as entirely the caller's responsibility.
package instance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/tsolve/internal/registry"
	"github.com/gitrdm/tsolve/pkg/tsolve"
)

// factSpec is a single ground fact, written as a 3-element YAML sequence
// of node names: [subject, predicate, object].
type factSpec [3]string

// constraintSpec is a single constraint triplet, written as a 3-element
// YAML sequence where each element is either a variable name declared by
// the enclosing problem's "variables" list, or a node name.
type constraintSpec [3]string

type problemSpec struct {
	Variables   []string            `yaml:"variables"`
	Constraints []constraintSpec    `yaml:"constraints"`
	MayEqual    map[string][]string `yaml:"may_equal"`
}

type fileSpec struct {
	Facts    []factSpec             `yaml:"facts"`
	Problems map[string]problemSpec `yaml:"problems"`
}

// Problem is one named problem loaded from an instance file, ready to be
// handed to tsolve.NewSolver (or wrapped in a batch.Instance).
type Problem struct {
	Name        string
	Variables   []string // Variables[k] is the caller-facing name of variable k
	Constraints []tsolve.Triplet
	MayEqual    []tsolve.MayEqualSet
}

// File is a fully loaded instance file: the FactIndex built from its
// facts, the Registry used to intern node names (shared by the index and
// every problem's constraints), and the named Problems it declares.
type File struct {
	Index    *tsolve.FactIndex
	Registry *registry.Registry
	Problems map[string]Problem
}

// Load reads and parses the instance file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	reg := registry.New()
	idx := tsolve.NewFactIndex()
	for _, f := range spec.Facts {
		nodes := reg.InternAll(f[:])
		idx.AddFact(nodes[0], nodes[1], nodes[2])
	}

	problems := make(map[string]Problem, len(spec.Problems))
	for name, ps := range spec.Problems {
		p, err := buildProblem(name, ps, reg)
		if err != nil {
			return nil, err
		}
		problems[name] = p
	}

	return &File{Index: idx, Registry: reg, Problems: problems}, nil
}

func buildProblem(name string, ps problemSpec, reg *registry.Registry) (Problem, error) {
	varIndex := make(map[string]int, len(ps.Variables))
	for i, v := range ps.Variables {
		if _, exists := varIndex[v]; exists {
			return Problem{}, &ValidationError{Problem: name, Reason: fmt.Sprintf("variable %q declared more than once", v)}
		}
		varIndex[v] = i
	}

	constraints := make([]tsolve.Triplet, len(ps.Constraints))
	for ci, c := range ps.Constraints {
		var t tsolve.Triplet
		for pos, arg := range c {
			if k, ok := varIndex[arg]; ok {
				t[pos] = tsolve.VarTerm(tsolve.Variable(k))
			} else {
				t[pos] = tsolve.NodeTerm(reg.Intern(arg))
			}
		}
		constraints[ci] = t
	}

	mayEqual := make([]tsolve.MayEqualSet, len(ps.Variables))
	for i := range mayEqual {
		mayEqual[i] = tsolve.MayEqualSet{}
	}
	for name2, peers := range ps.MayEqual {
		k, ok := varIndex[name2]
		if !ok {
			return Problem{}, &ValidationError{Problem: name, Reason: fmt.Sprintf("may_equal references undeclared variable %q", name2)}
		}
		for _, peer := range peers {
			j, ok := varIndex[peer]
			if !ok {
				return Problem{}, &ValidationError{Problem: name, Reason: fmt.Sprintf("may_equal[%q] references undeclared variable %q", name2, peer)}
			}
			if j >= k {
				return Problem{}, &ValidationError{Problem: name, Reason: fmt.Sprintf("may_equal[%q] references %q, which is not declared before it", name2, peer)}
			}
			mayEqual[k][tsolve.Variable(j)] = true
		}
	}

	return Problem{
		Name:        name,
		Variables:   append([]string(nil), ps.Variables...),
		Constraints: constraints,
		MayEqual:    mayEqual,
	}, nil
}

// Translate converts a solver assignment (one Node per variable, in
// Problem.Variables order) into a map of variable name to node name,
// using f's Registry.
func (f *File) Translate(p Problem, assignment []tsolve.Node) map[string]string {
	out := make(map[string]string, len(p.Variables))
	for i, name := range p.Variables {
		out[name] = f.Registry.Name(assignment[i])
	}
	return out
}
