// Command tsolve is a CLI front end over pkg/tsolve: it loads ternary-fact
// instance files (internal/instance) and solves their named problems, one
// instance at a time (run), across a whole directory (batch), or
// continuously as files change on disk (watch).
//
// # Exit codes
//
//   - 0: the command completed; for run this includes a search that
//     exhausts with zero assignments, for batch at least one problem
//     produced an assignment
//   - 1: run's problem has a ground constraint that is not a stored fact,
//     batch found no assignment for any problem, or the command failed for
//     an ordinary (non-contract) reason
//   - 2: run recovered a contract violation from the core solver (batch
//     reports such violations per instance in its log instead)
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "tsolve",
	Short: "Solve ternary-fact constraint problems",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd, batchCmd, watchCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUnsatisfiable):
		log.Info("no satisfying assignment")
		return 1
	default:
		var cv *contractViolationError
		if errors.As(err, &cv) {
			log.WithField("reason", cv.Reason).Error("contract violation")
			return 2
		}
		log.WithError(err).Error("command failed")
		return 1
	}
}
