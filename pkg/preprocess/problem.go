package preprocess

import "github.com/matzehuels/linebalance/pkg/instance"

// Problem bundles an instance with everything derived from it. It is built
// once by [Build] and only read afterwards.
type Problem struct {
	Instance  *instance.Instance
	Closure   *Closure
	Setups    SetupSummary
	Estimates StationEstimates

	// TotalTime is the sum of all task times.
	TotalTime int
}

// Build validates inst and computes its derived data.
func Build(inst *instance.Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	cl, err := NewClosure(inst.D)
	if err != nil {
		return nil, err
	}
	return &Problem{
		Instance:  inst,
		Closure:   cl,
		Setups:    NewSetupSummary(inst),
		Estimates: NewStationEstimates(inst.T, inst.C, cl),
		TotalTime: inst.TotalTime(),
	}, nil
}

// N returns the task count.
func (p *Problem) N() int { return p.Instance.N }

// C returns the cycle time.
func (p *Problem) C() int { return p.Instance.C }
