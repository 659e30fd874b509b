package preprocess

// StationEstimates holds per-task cumulative times and the station markers
// derived from them. Nothing in the bound or heuristic code reads them; they
// are reported for inspection.
type StationEstimates struct {
	PredTime []int // ta: total time of the transitive predecessors
	SuccTime []int // tn: total time of the transitive successors
	Earliest []int // E: ceil((ta+t)/c)
	Latest   []int // T: ceil((t+tn)/c)
}

// NewStationEstimates computes the estimates for task times t, cycle time c
// and the transitive closure of the precedence relation.
func NewStationEstimates(t []int, c int, cl *Closure) StationEstimates {
	n := len(t)
	e := StationEstimates{
		PredTime: make([]int, n),
		SuccTime: make([]int, n),
		Earliest: make([]int, n),
		Latest:   make([]int, n),
	}
	for i := range n {
		for _, j := range cl.Ps[i] {
			e.PredTime[i] += t[j]
		}
		for _, j := range cl.Fs[i] {
			e.SuccTime[i] += t[j]
		}
		e.Earliest[i] = CeilDiv(e.PredTime[i]+t[i], c)
		e.Latest[i] = CeilDiv(t[i]+e.SuccTime[i], c)
	}
	return e
}

// CeilDiv returns ceil(num/den) for num >= 0 and den > 0.
func CeilDiv(num, den int) int {
	return (num + den - 1) / den
}
