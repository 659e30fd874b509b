package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/linebalance/pkg/instance"
)

// BatchItem is the outcome of one instance in a batch. Exactly one of
// Result and Err is set.
type BatchItem struct {
	Path   string
	Name   string
	Result *Result
	Err    error
}

// ExecuteBatch runs the pipeline for every path with at most jobs instances
// in flight (jobs < 1 means one per CPU). Items are returned in input order.
// A failing instance is recorded in its item and does not stop the batch;
// only cancellation of ctx does.
func (r *Runner) ExecuteBatch(ctx context.Context, paths []string, opts Options, jobs int) ([]BatchItem, error) {
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	items := make([]BatchItem, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := opts
			o.Path = path
			o.Instance = nil

			res, err := r.Execute(ctx, o)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			items[i] = BatchItem{Path: path, Name: instance.Stem(path), Result: res, Err: err}
			if res != nil {
				items[i].Name = res.Name()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Failed returns the number of items with an error.
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
