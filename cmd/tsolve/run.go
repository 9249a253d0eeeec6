package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/tsolve/internal/instance"
	"github.com/gitrdm/tsolve/pkg/tsolve"
)

var runLimit int

var runCmd = &cobra.Command{
	Use:   "run <instance.yaml> <problem>",
	Short: "Solve one named problem from an instance file and print every assignment",
	Args:  cobra.ExactArgs(2),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "stop after this many assignments (0 means unlimited)")
}

func runRun(cmd *cobra.Command, args []string) error {
	path, problemName := args[0], args[1]

	f, err := instance.Load(path)
	if err != nil {
		return err
	}
	p, ok := f.Problems[problemName]
	if !ok {
		return fmt.Errorf("no problem named %q in %s", problemName, path)
	}

	assignments, err := solveGuarded(f, p, runLimit)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		log.WithFields(toFields(a)).Info("assignment")
	}
	log.WithField("count", len(assignments)).Debug("enumeration exhausted")
	return nil
}

// solveGuarded runs one problem to exhaustion (or limit assignments),
// recovering any panic from the core solver as a contractViolationError
// rather than letting it escape to the command boundary unstructured.
func solveGuarded(f *instance.File, p instance.Problem, limit int) (results []map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &contractViolationError{Reason: r}
			results = nil
		}
	}()

	solver := tsolve.NewSolver(f.Index, len(p.Variables), p.Constraints, p.MayEqual)
	if !solver.IsValid() {
		// A ground constraint failed against the index at construction
		// time: no assignment, however chosen, can ever satisfy this
		// problem. Distinct from a validly-constructed solver that simply
		// exhausts its search with zero results.
		return nil, errUnsatisfiable
	}

	for solver.IsValid() {
		a := solver.NextAssignment()
		if a == nil {
			break
		}
		results = append(results, f.Translate(p, a))
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

func toFields(assignment map[string]string) map[string]interface{} {
	fields := make(map[string]interface{}, len(assignment))
	for k, v := range assignment {
		fields[k] = v
	}
	return fields
}
