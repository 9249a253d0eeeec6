// Package batch runs many independent tsolve problem instances concurrently
// against a single, already-built FactIndex. Each instance is still solved
// by exactly one Solver, single-threaded (spec.md forbids parallel search
// within one instance) — the concurrency here is across instances, not
// within one.
package batch

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/tsolve/pkg/tsolve"
)

// Instance is one problem to solve against a shared FactIndex: a variable
// count, an ordered constraint list, and a may-equal table, exactly the
// arguments tsolve.NewSolver expects.
type Instance struct {
	ID          string
	N           int
	Constraints []tsolve.Triplet
	MayEqual    []tsolve.MayEqualSet

	// Limit caps the number of assignments collected for this instance. A
	// non-positive Limit means "collect every assignment."
	Limit int
}

// Result is the outcome of solving one Instance: either every collected
// assignment (up to Limit), or a non-nil Err if constructing the Solver
// panicked (a contract violation — see spec.md §7).
type Result struct {
	InstanceID  string
	Assignments [][]tsolve.Node
	Err         error
	Duration    time.Duration
}

// Runner solves a batch of Instances concurrently against one FactIndex.
// The index is only read during a run (Solver never mutates it); Runner
// itself does not serialize access, so callers must not Add or Remove
// facts on the index while a Run is in flight.
type Runner struct {
	index       *tsolve.FactIndex
	concurrency int
	limiter     *dispatchLimiter

	processed prometheus.Counter
	failed    prometheus.Counter
	duration  prometheus.Histogram
}

// RunnerOption configures a Runner constructed by NewRunner.
type RunnerOption func(*Runner)

// WithConcurrency sets the number of instances solved in parallel. n <= 0
// defaults to runtime.NumCPU.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) { r.concurrency = n }
}

// WithRateLimit caps the number of instances dispatched per second.
func WithRateLimit(perSecond int) RunnerOption {
	return func(r *Runner) { r.limiter = newDispatchLimiter(perSecond) }
}

// WithMetrics registers a Runner's counters and histogram on reg instead
// of leaving them unregistered (and so absent from any /metrics scrape).
// If reg already holds collectors of the same names (from an earlier
// Runner), the Runner records into those existing collectors.
func WithMetrics(reg prometheus.Registerer) RunnerOption {
	return func(r *Runner) {
		register := func(c prometheus.Collector) prometheus.Collector {
			if err := reg.Register(c); err != nil {
				if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
					return are.ExistingCollector
				}
				panic(err)
			}
			return c
		}
		r.processed = register(r.processed).(prometheus.Counter)
		r.failed = register(r.failed).(prometheus.Counter)
		r.duration = register(r.duration).(prometheus.Histogram)
	}
}

// NewRunner returns a Runner solving instances against index.
func NewRunner(index *tsolve.FactIndex, opts ...RunnerOption) *Runner {
	r := &Runner{
		index: index,
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsolve",
			Subsystem: "batch",
			Name:      "instances_processed_total",
			Help:      "Number of batch instances solved, regardless of outcome.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsolve",
			Subsystem: "batch",
			Name:      "instances_failed_total",
			Help:      "Number of batch instances that failed to construct (contract violation).",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tsolve",
			Subsystem: "batch",
			Name:      "instance_solve_duration_seconds",
			Help:      "Wall-clock time spent solving one batch instance.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency <= 0 {
		r.concurrency = runtime.NumCPU()
	}
	return r
}

// Close releases the Runner's rate limiter, if one was configured.
func (r *Runner) Close() {
	if r.limiter != nil {
		r.limiter.close()
	}
}

// Run solves every instance in instances concurrently and returns one
// Result per instance, in the same order. Instances without an explicit ID
// are assigned a fresh UUID so results and logs can be correlated even
// when the caller didn't name them.
//
// Run returns a non-nil error only if ctx is cancelled before every
// instance has been dispatched; individual instance failures are reported
// in their Result, not via the returned error.
func (r *Runner) Run(ctx context.Context, instances []Instance) ([]Result, error) {
	results := make([]Result, len(instances))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)

	for i, inst := range instances {
		i, inst := i, inst
		if inst.ID == "" {
			inst.ID = uuid.NewString()
		}

		group.Go(func() error {
			if r.limiter != nil {
				if err := r.limiter.wait(groupCtx); err != nil {
					return err
				}
			}
			results[i] = r.solveOne(inst)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) solveOne(inst Instance) (res Result) {
	start := time.Now()
	res = Result{InstanceID: inst.ID}

	defer func() {
		if rec := recover(); rec != nil {
			res.Err = &ContractViolation{Instance: inst.ID, Reason: rec}
			r.failed.Inc()
		}
		res.Duration = time.Since(start)
		r.processed.Inc()
		r.duration.Observe(res.Duration.Seconds())
	}()

	solver := tsolve.NewSolver(r.index, inst.N, inst.Constraints, inst.MayEqual)
	for solver.IsValid() {
		a := solver.NextAssignment()
		if a == nil {
			break
		}
		res.Assignments = append(res.Assignments, a)
		if inst.Limit > 0 && len(res.Assignments) >= inst.Limit {
			break
		}
	}
	return res
}
