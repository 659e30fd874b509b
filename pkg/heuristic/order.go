package heuristic

import (
	"math/rand/v2"

	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// NewRNG returns the random stream used by [Sample] for seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// trialRNG returns an independent stream for one trial of [SampleParallel].
func trialRNG(seed uint64, trial int) *rand.Rand {
	s := mix(seed, uint64(trial))
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}

// mix is the SplitMix64 finalizer applied to seed and stream.
func mix(seed, stream uint64) uint64 {
	x := seed ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// RandomOrder returns a topological order of the tasks of p. Whenever several
// tasks are available, one of them is drawn uniformly from rng.
func RandomOrder(p *preprocess.Problem, rng *rand.Rand) []int {
	return newWorkspace(p).order(rng)
}

// workspace holds the scratch buffers of one trial so repeated trials on the
// same goroutine do not allocate them again.
type workspace struct {
	p     *preprocess.Problem
	indeg []int
	avail []int
}

func newWorkspace(p *preprocess.Problem) *workspace {
	n := p.N()
	return &workspace{
		p:     p,
		indeg: make([]int, n),
		avail: make([]int, 0, n),
	}
}

// order runs Kahn's algorithm. The available tasks form an unordered set with
// swap-remove deletion.
func (w *workspace) order(rng *rand.Rand) []int {
	cl := w.p.Closure
	n := w.p.N()

	avail := w.avail[:0]
	for i := range n {
		w.indeg[i] = len(cl.P[i])
		if w.indeg[i] == 0 {
			avail = append(avail, i)
		}
	}

	out := make([]int, 0, n)
	for len(avail) > 0 {
		k := rng.IntN(len(avail))
		last := len(avail) - 1
		avail[k], avail[last] = avail[last], avail[k]
		task := avail[last]
		avail = avail[:last]

		out = append(out, task)
		for _, s := range cl.F[task] {
			w.indeg[s]--
			if w.indeg[s] == 0 {
				avail = append(avail, s)
			}
		}
	}
	w.avail = avail
	return out
}
