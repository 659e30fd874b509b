package preprocess

import (
	"slices"

	"github.com/matzehuels/linebalance/pkg/instance"
)

// SetupVector is an ascending sequence of minimal setup costs. After sorting
// an entry no longer belongs to a particular task, so the vector only offers
// order-based access: the k-th smallest entry and prefix sums.
type SetupVector struct {
	costs []int
}

func newSetupVector(costs []int) SetupVector {
	slices.Sort(costs)
	return SetupVector{costs: costs}
}

// Len returns the number of entries.
func (v SetupVector) Len() int { return len(v.costs) }

// At returns the k-th smallest entry (0-based).
func (v SetupVector) At(k int) int { return v.costs[k] }

// Prefix returns the sum of the k smallest entries. k is clamped to
// [0, Len()].
func (v SetupVector) Prefix(k int) int {
	k = max(0, min(k, len(v.costs)))
	sum := 0
	for _, c := range v.costs[:k] {
		sum += c
	}
	return sum
}

// Sum returns the sum of all entries.
func (v SetupVector) Sum() int { return v.Prefix(len(v.costs)) }

// Values returns a copy of the entries in ascending order.
func (v SetupVector) Values() []int { return slices.Clone(v.costs) }

// SetupSummary holds the per-task minimal setups consumed by the setup-aware
// lower bound.
type SetupSummary struct {
	// Forward: min over j != i of sf[i][j], capped at c. For a single task
	// the entry is c.
	Forward SetupVector
	// Backward: min over all j, including i itself, of sb[i][j], capped at c.
	Backward SetupVector
}

// NewSetupSummary computes the sorted minimal setup vectors of inst.
func NewSetupSummary(inst *instance.Instance) SetupSummary {
	n, c := inst.N, inst.C
	fwd := make([]int, n)
	bwd := make([]int, n)
	for i := range n {
		minF := c
		for j, v := range inst.SF.Row(i) {
			if j != i {
				minF = min(minF, v)
			}
		}
		minB := c
		for _, v := range inst.SB.Row(i) {
			minB = min(minB, v)
		}
		fwd[i], bwd[i] = minF, minB
	}
	return SetupSummary{
		Forward:  newSetupVector(fwd),
		Backward: newSetupVector(bwd),
	}
}
