package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

// solverFlags are shared by solve, batch, render and inspect.
type solverFlags struct {
	seed       uint64
	iterations int
	workers    int
	onlyLB     bool
	noCache    bool
	refresh    bool
}

func (f *solverFlags) register(cmd *cobra.Command, withOnlyLB bool) {
	fl := cmd.Flags()
	fl.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed of the heuristic")
	fl.IntVar(&f.iterations, "iter", pipeline.DefaultIterations, "heuristic trials")
	fl.IntVar(&f.workers, "workers", pipeline.DefaultWorkers, "sampling goroutines (1 = sequential single stream)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results but store fresh ones")
	if withOnlyLB {
		fl.BoolVar(&f.onlyLB, "onlylb", false, "only compute the lower bounds")
	}
}

// solverOptions merges the config file with the flags. Flags the user set
// win. Explicit zero values are rejected rather than replaced by defaults.
func (c *CLI) solverOptions(cmd *cobra.Command, f *solverFlags) (pipeline.Options, error) {
	opts := c.config().Solver.Options()
	fl := cmd.Flags()
	if fl.Changed("seed") {
		if f.seed < 1 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "--seed must be >= 1 (got %d)", f.seed)
		}
		opts.Seed = f.seed
	}
	if fl.Changed("iter") {
		if f.iterations < 1 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "--iter must be >= 1 (got %d)", f.iterations)
		}
		opts.Iterations = f.iterations
	}
	if fl.Changed("workers") {
		if f.workers < 1 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "--workers must be >= 1 (got %d)", f.workers)
		}
		opts.Workers = f.workers
	}
	opts.OnlyLB = f.onlyLB
	opts.Refresh = f.refresh
	return opts, nil
}
