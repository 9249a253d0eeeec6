package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/tsolve/internal/batch"
	"github.com/gitrdm/tsolve/internal/instance"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Solve every problem declared by every instance file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "instances solved in parallel (0 means NumCPU)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	anySolved := false
	for _, entry := range entries {
		if entry.IsDir() || !isInstanceFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		solved, err := solveFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		anySolved = anySolved || solved
	}

	if !anySolved {
		return errUnsatisfiable
	}
	return nil
}

func solveFile(ctx context.Context, path string) (bool, error) {
	f, err := instance.Load(path)
	if err != nil {
		return false, err
	}

	instances := make([]batch.Instance, 0, len(f.Problems))
	names := make(map[string]string, len(f.Problems))
	for name, p := range f.Problems {
		id := path + "#" + name
		names[id] = name
		instances = append(instances, batch.Instance{
			ID:          id,
			N:           len(p.Variables),
			Constraints: p.Constraints,
			MayEqual:    p.MayEqual,
		})
	}

	runner := batch.NewRunner(f.Index,
		batch.WithConcurrency(batchConcurrency),
		batch.WithMetrics(prometheus.DefaultRegisterer),
	)
	defer runner.Close()

	results, err := runner.Run(ctx, instances)
	if err != nil {
		return false, err
	}

	anySolved := false
	for _, res := range results {
		entry := log.WithFields(map[string]interface{}{
			"file":    path,
			"problem": names[res.InstanceID],
		})
		switch {
		case res.Err != nil:
			entry.WithError(res.Err).Error("instance failed")
		case len(res.Assignments) == 0:
			entry.Info("no satisfying assignment")
		default:
			entry.WithField("count", len(res.Assignments)).Info("solved")
			anySolved = true
		}
	}
	return anySolved, nil
}

func isInstanceFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
