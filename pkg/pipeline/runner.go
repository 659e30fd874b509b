package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linebalance/pkg/bounds"
	"github.com/matzehuels/linebalance/pkg/cache"
	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/instance"
	"github.com/matzehuels/linebalance/pkg/observability"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// Runner executes the pipeline with caching. It keeps no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads and solves one instance.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	start := time.Now()
	inst := opts.Instance
	if inst == nil {
		var err error
		if inst, err = instance.Load(opts.Path); err != nil {
			return nil, err
		}
	}
	res.Instance = inst
	res.InstanceHash = cache.Hash(inst.Fingerprint())
	res.Stats.LoadTime = time.Since(start)

	start = time.Now()
	p, err := preprocess.Build(inst)
	res.Stats.PreprocessTime = time.Since(start)
	observability.Solve().OnPreprocess(ctx, inst.Name, inst.N, res.Stats.PreprocessTime, err)
	if err != nil {
		return nil, err
	}
	res.Problem = p
	res.Stats.N = inst.N
	res.Stats.Edges = len(inst.Edges())

	r.Logger.Debug("preprocessed instance",
		"instance", inst.Name,
		"n", inst.N,
		"c", inst.C,
		"directed", inst.Directed,
		"duration", res.Stats.PreprocessTime)

	start = time.Now()
	b, hit, err := r.BoundsWithCacheInfo(ctx, p, res.InstanceHash, opts)
	if err != nil {
		return nil, err
	}
	res.Bounds = b
	res.CacheInfo.BoundsHit = hit
	res.Stats.BoundsTime = time.Since(start)
	observability.Solve().OnBounds(ctx, inst.Name, b.Best(), res.Stats.BoundsTime)

	r.Logger.Info("computed lower bounds",
		"instance", inst.Name,
		"best", b.Best(),
		"cache", hit,
		"duration", res.Stats.BoundsTime)

	if opts.OnlyLB {
		return res, nil
	}

	start = time.Now()
	observability.Solve().OnSampleStart(ctx, inst.Name, opts.Iterations)
	sol, hit, err := r.SolveWithCacheInfo(ctx, p, res.InstanceHash, opts)
	res.Stats.SampleTime = time.Since(start)
	stations := 0
	if sol != nil {
		stations = sol.Stations
	}
	observability.Solve().OnSampleComplete(ctx, inst.Name, stations, res.Stats.SampleTime, err)
	if err != nil {
		return nil, err
	}
	res.Solution = sol
	res.CacheInfo.SolveHit = hit

	r.Logger.Info("sampled solution",
		"instance", inst.Name,
		"stations", sol.Stations,
		"best", b.Best(),
		"cache", hit,
		"duration", res.Stats.SampleTime)
	if sol.Stations < b.Best() {
		r.Logger.Warn("solution uses fewer stations than the lower bound",
			"instance", inst.Name,
			"stations", sol.Stations,
			"best", b.Best(),
			"directed", inst.Directed)
	}
	return res, nil
}

// BoundsWithCacheInfo returns the lower bounds of p and whether they came
// from the cache.
func (r *Runner) BoundsWithCacheInfo(ctx context.Context, p *preprocess.Problem, hash string, opts Options) (bounds.LowerBounds, bool, error) {
	key := r.Keyer.BoundsKey(hash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var b bounds.LowerBounds
			if err := json.Unmarshal(data, &b); err == nil {
				observability.Cache().OnCacheHit(ctx, "bounds")
				return b, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "cache", "bounds", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "bounds")
	}

	b := bounds.Compute(p)
	r.store(ctx, "bounds", key, b, cache.TTLBounds)
	return b, false, nil
}

// SolveWithCacheInfo samples a solution for p and reports whether it came
// from the cache. Every returned solution has passed [heuristic.Verify];
// a cached entry that fails verification is recomputed.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, p *preprocess.Problem, hash string, opts Options) (*heuristic.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.SolveKey(hash, cache.SolveKeyOpts{
		Seed:       opts.Seed,
		Iterations: opts.Iterations,
		Parallel:   opts.Parallel(),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var sol heuristic.Result
			if err := json.Unmarshal(data, &sol); err == nil && heuristic.Verify(p, &sol) == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				return &sol, true, nil
			}
			r.Logger.Debug("discarding invalid cache entry", "cache", "solve")
		} else if err != nil {
			r.Logger.Warn("cache read failed", "cache", "solve", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "solve")
	}

	var (
		sol *heuristic.Result
		err error
	)
	if opts.Parallel() {
		sol, err = heuristic.SampleParallel(ctx, p, opts.Seed, opts.Iterations, opts.Workers)
	} else {
		sol, err = heuristic.Sample(p, opts.Seed, opts.Iterations)
	}
	if err != nil {
		return nil, false, err
	}
	if err := heuristic.Verify(p, sol); err != nil {
		return nil, false, fmt.Errorf("verify solution: %w", err)
	}

	r.store(ctx, "solve", key, sol, cache.TTLSolve)
	return sol, false, nil
}

// store writes v to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "cache", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
