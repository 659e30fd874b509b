package preprocess

import (
	"slices"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/instance"
)

// Closure holds the precedence sets of an instance. All task ids are 0-based
// and every list is ascending.
type Closure struct {
	P [][]int // P[i]: direct predecessors of i
	F [][]int // F[i]: direct successors of i

	// D.At(i, j) reports whether i strictly, transitively precedes j.
	D instance.Matrix[bool]

	Ps [][]int // Ps[i]: transitive predecessors of i
	Fs [][]int // Fs[i]: transitive successors of i
	Is [][]int // Is[i]: tasks incomparable to i, self excluded
}

// NewClosure computes the precedence closure of the direct relation d.
// A cyclic relation is rejected with GRAPH_CYCLE before the closure is built.
func NewClosure(d instance.Matrix[bool]) (*Closure, error) {
	n := d.N()
	c := &Closure{
		P: make([][]int, n),
		F: make([][]int, n),
	}
	for i := range n {
		for j, ok := range d.Row(i) {
			if ok {
				c.F[i] = append(c.F[i], j)
				c.P[j] = append(c.P[j], i)
			}
		}
	}

	if cycle := findCycle(c.F); cycle != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphCycle, &errors.CycleError{Tasks: cycle}, "precedence relations")
	}

	c.D = transitiveClosure(d)

	c.Ps = make([][]int, n)
	c.Fs = make([][]int, n)
	c.Is = make([][]int, n)
	for i := range n {
		for j := range n {
			switch {
			case c.D.At(i, j):
				c.Fs[i] = append(c.Fs[i], j)
				c.Ps[j] = append(c.Ps[j], i)
			case i < j && !c.D.At(j, i):
				c.Is[i] = append(c.Is[i], j)
				c.Is[j] = append(c.Is[j], i)
			}
		}
	}
	return c, nil
}

// Precedes reports whether task i must be processed before task j.
func (c *Closure) Precedes(i, j int) bool {
	return c.D.At(i, j)
}

// Sources returns the tasks without predecessors.
func (c *Closure) Sources() []int {
	var ids []int
	for i, p := range c.P {
		if len(p) == 0 {
			ids = append(ids, i)
		}
	}
	return ids
}

// transitiveClosure returns the reachability matrix of d: for every
// intermediate k, each row i with D[i][k] inherits row k.
func transitiveClosure(d instance.Matrix[bool]) instance.Matrix[bool] {
	out := d.Clone()
	n := out.N()
	for k := range n {
		krow := out.Row(k)
		for i := range n {
			if !out.At(i, k) {
				continue
			}
			row := out.Row(i)
			for j, ok := range krow {
				if ok {
					row[j] = true
				}
			}
		}
	}
	return out
}

// findCycle returns the tasks of one directed cycle in traversal order, or
// nil if the successor lists describe a DAG.
func findCycle(succ [][]int) []int {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(succ))
	var (
		stack []int
		cycle []int
	)

	var dfs func(v int) bool
	dfs = func(v int) bool {
		color[v] = gray
		stack = append(stack, v)
		for _, w := range succ[v] {
			switch color[w] {
			case white:
				if dfs(w) {
					return true
				}
			case gray:
				cycle = slices.Clone(stack[slices.Index(stack, w):])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[v] = black
		return false
	}

	for v := range succ {
		if color[v] == white && dfs(v) {
			return cycle
		}
	}
	return nil
}
