package heuristic

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// Sample runs iterations trials on the stream [NewRNG](seed) and returns the
// one with the fewest stations. Ties keep the earliest trial.
func Sample(p *preprocess.Problem, seed uint64, iterations int) (*Result, error) {
	if iterations < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "iterations must be >= 1 (got %d)", iterations)
	}

	rng := NewRNG(seed)
	w := newWorkspace(p)

	var best *Result
	for k := range iterations {
		order := w.order(rng)
		assignment, stations := AssignStations(p, order)
		if best == nil || stations < best.Stations {
			best = &Result{Order: order, Assignment: assignment, Stations: stations, Trial: k}
		}
	}
	return best, nil
}

// SampleParallel runs iterations trials on up to workers goroutines. Trial k
// draws from its own stream derived from (seed, k), and the best trial is the
// one with the fewest stations and, among those, the lowest index. The result
// therefore depends only on seed and iterations.
//
// A workers value below 1 uses one worker per CPU. Cancelling ctx stops the
// workers and returns the context error.
func SampleParallel(ctx context.Context, p *preprocess.Problem, seed uint64, iterations, workers int) (*Result, error) {
	if iterations < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "iterations must be >= 1 (got %d)", iterations)
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, iterations)

	bests := make([]*Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for id := range workers {
		g.Go(func() error {
			w := newWorkspace(p)
			for k := id; k < iterations; k += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				order := w.order(trialRNG(seed, k))
				assignment, stations := AssignStations(p, order)
				if better(stations, k, bests[id]) {
					bests[id] = &Result{Order: order, Assignment: assignment, Stations: stations, Trial: k}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Result
	for _, r := range bests {
		if better(r.Stations, r.Trial, best) {
			best = r
		}
	}
	return best, nil
}

func better(stations, trial int, cur *Result) bool {
	if cur == nil {
		return true
	}
	if stations != cur.Stations {
		return stations < cur.Stations
	}
	return trial < cur.Trial
}
