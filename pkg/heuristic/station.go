package heuristic

import "github.com/matzehuels/linebalance/pkg/preprocess"

// NextStation returns the exclusive end of the station that starts at
// position start of order.
//
// The scan runs to the end of the order and keeps the farthest position j
// where the station order[start..j] closes within the cycle time:
//
//	t[o_start] + sum(sf[o_k-1][o_k] + t[o_k]) + sb[o_j][o_start] <= c
//
// A later position may fit again after an earlier one did not, because the
// backward setup depends on the last task. The station always contains at
// least the task at start.
func NextStation(p *preprocess.Problem, order []int, start int) int {
	inst := p.Instance
	first := order[start]

	end := start
	load := inst.T[first]
	for j := start + 1; j < len(order); j++ {
		load += inst.SF.At(order[j-1], order[j]) + inst.T[order[j]]
		if load+inst.SB.At(order[j], first) <= inst.C {
			end = j
		}
	}
	return end + 1
}

// AssignStations cuts order into consecutive stations with [NextStation].
// It returns the 1-based station id of every position and the station count.
func AssignStations(p *preprocess.Problem, order []int) ([]int, int) {
	assignment := make([]int, len(order))
	station := 0
	for start := 0; start < len(order); {
		end := NextStation(p, order, start)
		station++
		for k := start; k < end; k++ {
			assignment[k] = station
		}
		start = end
	}
	return assignment, station
}
