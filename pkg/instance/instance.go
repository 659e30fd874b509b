package instance

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/linebalance/pkg/errors"
)

// Instance is the raw problem data of one line balancing instance.
//
// The zero value describes an empty instance without a cycle time and fails
// [Instance.Validate]; use [New] to allocate the matrices for n tasks.
type Instance struct {
	Name string // Display name, usually the file stem

	N int   // Task count
	C int   // Cycle time (station capacity), must be positive
	T []int // Task durations, len N

	D  Matrix[bool] // D.At(i, j): task i immediately precedes task j
	SF Matrix[int]  // Forward setup from task i to task j within a station
	SB Matrix[int]  // Backward setup closing a station from last task i to first task j

	Optimum  *int // Known optimal station count, nil when unknown
	Directed bool // Both forward and backward setup data were supplied
}

// New allocates an instance with n tasks, cycle time c and zeroed data.
func New(name string, n, c int) *Instance {
	if n < 0 {
		n = 0
	}
	return &Instance{
		Name: name,
		N:    n,
		C:    c,
		T:    make([]int, n),
		D:    NewMatrix[bool](n),
		SF:   NewMatrix[int](n),
		SB:   NewMatrix[int](n),
	}
}

// Validate checks the structural invariants the solver relies on.
// It does not check acyclicity; the precedence closure reports cycles.
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New(errors.ErrCodeInvalidInput, "instance is nil")
	}
	if inst.N < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "task count must be >= 0 (got %d)", inst.N)
	}
	if inst.C <= 0 {
		return errors.New(errors.ErrCodeInvalidCapacity, "cycle time must be > 0 (got %d)", inst.C)
	}
	if len(inst.T) != inst.N {
		return errors.New(errors.ErrCodeInvalidInput, "task times length must be %d (got %d)", inst.N, len(inst.T))
	}
	dims := []struct {
		name string
		n    int
	}{
		{"precedence", inst.D.N()},
		{"forward setup", inst.SF.N()},
		{"backward setup", inst.SB.N()},
	}
	for _, d := range dims {
		if d.n != inst.N {
			return errors.New(errors.ErrCodeInvalidInput, "%s matrix must be %dx%d (got %dx%d)", d.name, inst.N, inst.N, d.n, d.n)
		}
	}
	for i, v := range inst.T {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "task %d time must be >= 0 (got %d)", i+1, v)
		}
	}
	for i := 0; i < inst.N; i++ {
		for j := 0; j < inst.N; j++ {
			if v := inst.SF.At(i, j); v < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "forward setup %d,%d must be >= 0 (got %d)", i+1, j+1, v)
			}
			if v := inst.SB.At(i, j); v < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "backward setup %d,%d must be >= 0 (got %d)", i+1, j+1, v)
			}
		}
	}
	if inst.Optimum != nil && *inst.Optimum < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "optimum must be >= 0 (got %d)", *inst.Optimum)
	}
	return nil
}

// TotalTime returns the sum of all task durations.
func (inst *Instance) TotalTime() int {
	total := 0
	for _, v := range inst.T {
		total += v
	}
	return total
}

// Edges returns the direct precedence pairs in row-major order.
func (inst *Instance) Edges() [][2]int {
	var edges [][2]int
	for i := 0; i < inst.N; i++ {
		for j, ok := range inst.D.Row(i) {
			if ok {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// SetOptimum records a known optimal station count.
func (inst *Instance) SetOptimum(v int) {
	inst.Optimum = &v
}

// Fingerprint returns a canonical encoding of the problem data. Two instances
// with the same data have the same fingerprint regardless of their names, so
// it is suitable as cache key material.
func (inst *Instance) Fingerprint() []byte {
	doc := toDocument(inst)
	doc.Name = ""
	data, err := json.Marshal(doc)
	if err != nil {
		// toDocument produces only ints, bools and slices.
		panic(fmt.Sprintf("instance fingerprint: %v", err))
	}
	return data
}

// ReadOption configures [ParseALB] and [ReadJSON].
type ReadOption func(*readOptions)

type readOptions struct {
	maxTasks int
}

// WithMaxTasks rejects instances declaring more than n tasks before any
// matrix is allocated. n <= 0 means no limit.
func WithMaxTasks(n int) ReadOption {
	return func(o *readOptions) { o.maxTasks = n }
}

func newReadOptions(opts []ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// taskCountProblem describes why a declared task count is rejected, or
// returns "". Decoders call it before New so that a short document cannot
// request n×n matrices it never fills.
func (o readOptions) taskCountProblem(n int) string {
	if n < 0 {
		return fmt.Sprintf("task count must be >= 0 (got %d)", n)
	}
	if o.maxTasks > 0 && n > o.maxTasks {
		return fmt.Sprintf("task count %d exceeds the limit of %d", n, o.maxTasks)
	}
	return ""
}
