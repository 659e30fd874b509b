// Package pipeline runs the complete solve: load → preprocess → bounds →
// heuristic, with caching and observability.
//
// The CLI, the batch command and the HTTP server all go through a [Runner]
// so that defaults, caching and verification behave the same everywhere.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Path: "HAHN.alb"})
//	if err != nil {
//	    return err
//	}
//	pipeline.WriteLines(os.Stdout, res)
//
// Individual stages are available as [Runner.BoundsWithCacheInfo] and
// [Runner.SolveWithCacheInfo] for callers that already hold a
// [preprocess.Problem].
package pipeline

import (
	"time"

	"github.com/matzehuels/linebalance/pkg/bounds"
	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/instance"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// Defaults shared by the CLI, the config file and the HTTP API.
const (
	DefaultSeed       = uint64(1)
	DefaultIterations = 100
	DefaultWorkers    = 1
)

// Options configures one pipeline run.
type Options struct {
	// Path is the instance file. Ignored when Instance is set.
	Path string `json:"-"`
	// Instance is an already loaded instance.
	Instance *instance.Instance `json:"-"`

	// Seed 0 selects DefaultSeed; callers taking user input reject it.
	Seed       uint64 `json:"seed,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	// Workers selects the sampler: 1 runs the single-stream sampler, more
	// run the per-trial-stream sampler on that many goroutines.
	Workers int  `json:"workers,omitempty"`
	OnlyLB  bool `json:"only_lb,omitempty"`
	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Instance == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "instance path or data is required")
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be >= 1 (got %d)", o.Iterations)
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be >= 1 (got %d)", o.Workers)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	o.validated = true
	return nil
}

// Parallel reports whether the per-trial-stream sampler is used.
func (o *Options) Parallel() bool {
	return o.Workers > 1
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Instance     *instance.Instance
	Problem      *preprocess.Problem
	InstanceHash string

	Bounds bounds.LowerBounds
	// Solution is nil when only the bounds were requested.
	Solution *heuristic.Result

	Stats     Stats
	CacheInfo CacheInfo
}

// Name returns the instance name used in output lines.
func (r *Result) Name() string {
	return r.Instance.Name
}

// Gap returns stations minus the best bound, or -1 without a solution.
func (r *Result) Gap() int {
	if r.Solution == nil {
		return -1
	}
	return r.Solution.Stations - r.Bounds.Best()
}

// Stats holds sizes and stage timings.
type Stats struct {
	N              int
	Edges          int
	LoadTime       time.Duration
	PreprocessTime time.Duration
	BoundsTime     time.Duration
	SampleTime     time.Duration
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.PreprocessTime + s.BoundsTime + s.SampleTime
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	BoundsHit bool
	SolveHit  bool
}
