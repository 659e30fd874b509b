package heuristic

import (
	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// Verify checks that r is a feasible solution of p: Order is a permutation
// that respects the transitive precedence relation, Assignment numbers
// consecutive stations from 1, Stations matches, and every station with more
// than one task fits the cycle time including its closing setup.
//
// Violations are reported as INTERNAL_ERROR since the constructors in this
// package never produce them.
func Verify(p *preprocess.Problem, r *Result) error {
	n := p.N()
	if r == nil {
		return errors.New(errors.ErrCodeInternal, "solution is nil")
	}
	if len(r.Order) != n || len(r.Assignment) != n {
		return errors.New(errors.ErrCodeInternal, "solution covers %d positions, want %d", len(r.Order), n)
	}

	pos := make([]int, n)
	seen := make([]bool, n)
	for k, task := range r.Order {
		if task < 0 || task >= n || seen[task] {
			return errors.New(errors.ErrCodeInternal, "order is not a permutation (position %d holds %d)", k, task)
		}
		seen[task] = true
		pos[task] = k
	}
	for i := range n {
		for _, j := range p.Closure.Fs[i] {
			if pos[i] >= pos[j] {
				return errors.New(errors.ErrCodeInternal, "task %d must precede task %d", i+1, j+1)
			}
		}
	}

	prev := 0
	for k, s := range r.Assignment {
		if (k == 0 && s != 1) || (s != prev && s != prev+1) {
			return errors.New(errors.ErrCodeInternal, "station ids are not consecutive at position %d", k)
		}
		prev = s
	}
	if prev != r.Stations {
		return errors.New(errors.ErrCodeInternal, "solution reports %d stations, assignment uses %d", r.Stations, prev)
	}

	for _, l := range Loads(p, r) {
		if len(l.Tasks) > 1 && l.Idle < 0 {
			return errors.New(errors.ErrCodeInternal, "station %d load %d exceeds cycle time %d", l.Station, l.Load(), p.C())
		}
	}
	return nil
}
