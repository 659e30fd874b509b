package heuristic

import "github.com/matzehuels/linebalance/pkg/preprocess"

// Result is one constructed solution.
type Result struct {
	// Order is the processing sequence of task ids.
	Order []int `json:"order" bson:"order"`
	// Assignment[k] is the 1-based station of Order[k]. It is non-decreasing.
	Assignment []int `json:"assignment" bson:"assignment"`
	// Stations is the number of stations used.
	Stations int `json:"stations" bson:"stations"`
	// Trial is the 0-based index of the trial that produced the result.
	Trial int `json:"trial" bson:"trial"`
}

// Groups returns the task ids of every station in processing order.
func (r *Result) Groups() [][]int {
	groups := make([][]int, r.Stations)
	for k, s := range r.Assignment {
		groups[s-1] = append(groups[s-1], r.Order[k])
	}
	return groups
}

// StationLoad describes the time spent in one station.
type StationLoad struct {
	Station  int   // 1-based station id
	Tasks    []int // Task ids in processing order
	TaskTime int   // Sum of task times
	Forward  int   // Sum of forward setups between consecutive tasks
	Closing  int   // Backward setup from the last task to the first, 0 for single tasks
	Idle     int   // Cycle time minus load, negative when overloaded
}

// Load returns the total station time.
func (s StationLoad) Load() int {
	return s.TaskTime + s.Forward + s.Closing
}

// Loads returns the time breakdown of every station of r.
func Loads(p *preprocess.Problem, r *Result) []StationLoad {
	inst := p.Instance
	groups := r.Groups()
	loads := make([]StationLoad, len(groups))
	for k, tasks := range groups {
		l := StationLoad{Station: k + 1, Tasks: tasks}
		for i, task := range tasks {
			l.TaskTime += inst.T[task]
			if i > 0 {
				l.Forward += inst.SF.At(tasks[i-1], task)
			}
		}
		if len(tasks) > 1 {
			l.Closing = inst.SB.At(tasks[len(tasks)-1], tasks[0])
		}
		l.Idle = inst.C - l.Load()
		loads[k] = l
	}
	return loads
}
