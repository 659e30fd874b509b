package preprocess

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/instance"
)

func newInstance(t *testing.T, c int, times []int, edges ...[2]int) *instance.Instance {
	t.Helper()
	inst := instance.New("test", len(times), c)
	copy(inst.T, times)
	for _, e := range edges {
		inst.D.Set(e[0], e[1], true)
	}
	return inst
}

func TestClosureChain(t *testing.T) {
	inst := newInstance(t, 10, []int{1, 1, 1}, [2]int{0, 1}, [2]int{1, 2})

	cl, err := NewClosure(inst.D)
	require.NoError(t, err)

	assert.True(t, cl.D.At(0, 2), "closure should contain 0->2")
	assert.False(t, inst.D.At(0, 2), "direct relation must not be modified")
	assert.False(t, cl.D.At(2, 0))

	assert.Equal(t, [][]int{nil, {0}, {1}}, cl.P)
	assert.Equal(t, [][]int{{1}, {2}, nil}, cl.F)
	assert.Equal(t, [][]int{nil, {0}, {0, 1}}, cl.Ps)
	assert.Equal(t, [][]int{{1, 2}, {2}, nil}, cl.Fs)
	for i := range 3 {
		assert.Empty(t, cl.Is[i], "a chain has no incomparable pairs")
	}
	assert.Equal(t, []int{0}, cl.Sources())
	assert.True(t, cl.Precedes(0, 2))
}

func TestClosureIncomparable(t *testing.T) {
	// 0 -> 1, 2 unrelated
	inst := newInstance(t, 10, []int{1, 1, 1}, [2]int{0, 1})

	cl, err := NewClosure(inst.D)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, cl.Is[0])
	assert.Equal(t, []int{2}, cl.Is[1])
	assert.Equal(t, []int{0, 1}, cl.Is[2])
	assert.ElementsMatch(t, []int{0, 2}, cl.Sources())
}

func TestClosureDiamond(t *testing.T) {
	//   0
	//  / \
	// 1   2
	//  \ /
	//   3
	inst := newInstance(t, 10, []int{1, 1, 1, 1},
		[2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{2, 3})

	cl, err := NewClosure(inst.D)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, cl.Fs[0])
	assert.Equal(t, []int{0, 1, 2}, cl.Ps[3])
	assert.Equal(t, []int{2}, cl.Is[1])
	assert.Equal(t, []int{1}, cl.Is[2])
}

func TestClosureCycle(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges [][2]int
	}{
		{"self loop", 1, [][2]int{{0, 0}}},
		{"two cycle", 2, [][2]int{{0, 1}, {1, 0}}},
		{"triangle behind source", 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := newInstance(t, 10, make([]int, tt.n), tt.edges...)

			_, err := NewClosure(inst.D)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeGraphCycle))

			var ce *errors.CycleError
			require.True(t, stderrors.As(err, &ce))
			require.NotEmpty(t, ce.Tasks)
			for k, v := range ce.Tasks {
				next := ce.Tasks[(k+1)%len(ce.Tasks)]
				assert.True(t, inst.D.At(v, next), "cycle edge %d->%d not in relation", v, next)
			}
		})
	}
}

func TestSetupSummary(t *testing.T) {
	inst := newInstance(t, 10, []int{1, 1, 1})
	// Forward setups ignore the diagonal.
	inst.SF.Set(0, 0, 0)
	inst.SF.Set(0, 1, 4)
	inst.SF.Set(0, 2, 6)
	inst.SF.Set(1, 0, 3)
	inst.SF.Set(1, 2, 2)
	inst.SF.Set(2, 0, 50)
	inst.SF.Set(2, 1, 40)

	s := NewSetupSummary(inst)
	// Per task: 4, 2, min(40, 10) = 10; sorted ascending.
	assert.Equal(t, []int{2, 4, 10}, s.Forward.Values())
	assert.Equal(t, 3, s.Forward.Len())
	assert.Equal(t, 2, s.Forward.At(0))
	assert.Equal(t, 6, s.Forward.Prefix(2))
	assert.Equal(t, 16, s.Forward.Sum())
	assert.Equal(t, 0, s.Forward.Prefix(-1))
	assert.Equal(t, 16, s.Forward.Prefix(99))
}

// The backward minimum ranges over the diagonal as well. Files never set
// sb[i][i], so the entry collapses to 0 even when every real backward setup
// is positive.
func TestSetupSummaryBackwardIncludesSelf(t *testing.T) {
	inst := newInstance(t, 10, []int{1, 1})
	inst.SB.Set(0, 1, 3)
	inst.SB.Set(1, 0, 5)

	s := NewSetupSummary(inst)
	assert.Equal(t, []int{0, 0}, s.Backward.Values())

	inst.SB.Set(0, 0, 7)
	inst.SB.Set(1, 1, 20)
	s = NewSetupSummary(inst)
	assert.Equal(t, []int{3, 5}, s.Backward.Values())
}

func TestSetupSummarySingleTask(t *testing.T) {
	inst := newInstance(t, 9, []int{4})
	s := NewSetupSummary(inst)
	assert.Equal(t, []int{9}, s.Forward.Values())
	assert.Equal(t, []int{0}, s.Backward.Values())
}

func TestSetupVectorIsACopy(t *testing.T) {
	v := newSetupVector([]int{3, 1, 2})
	vals := v.Values()
	vals[0] = 100
	assert.Equal(t, 1, v.At(0))
}

func TestStationEstimates(t *testing.T) {
	inst := newInstance(t, 10, []int{6, 3, 7}, [2]int{0, 1}, [2]int{1, 2})
	cl, err := NewClosure(inst.D)
	require.NoError(t, err)

	e := NewStationEstimates(inst.T, inst.C, cl)
	assert.Equal(t, []int{0, 6, 9}, e.PredTime)
	assert.Equal(t, []int{10, 7, 0}, e.SuccTime)
	assert.Equal(t, []int{1, 1, 2}, e.Earliest)
	assert.Equal(t, []int{2, 1, 1}, e.Latest)
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ num, den, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{15, 10, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CeilDiv(tt.num, tt.den), "CeilDiv(%d, %d)", tt.num, tt.den)
	}
}

func TestBuild(t *testing.T) {
	inst := newInstance(t, 10, []int{5, 5, 5})
	p, err := Build(inst)
	require.NoError(t, err)

	assert.Equal(t, 3, p.N())
	assert.Equal(t, 10, p.C())
	assert.Equal(t, 15, p.TotalTime)
	assert.Same(t, inst, p.Instance)
	assert.Equal(t, 3, p.Setups.Forward.Len())
	assert.Len(t, p.Estimates.Earliest, 3)
}

func TestBuildEmpty(t *testing.T) {
	p, err := Build(instance.New("empty", 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, p.N())
	assert.Equal(t, 0, p.TotalTime)
	assert.Equal(t, 0, p.Setups.Forward.Len())
	assert.Empty(t, p.Closure.Sources())
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(instance.New("bad", 2, 0))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCapacity))

	cyclic := newInstance(t, 5, []int{1, 1}, [2]int{0, 1}, [2]int{1, 0})
	_, err = Build(cyclic)
	assert.True(t, errors.Is(err, errors.ErrCodeGraphCycle))
}
