package bounds

import (
	"fmt"

	"github.com/matzehuels/linebalance/pkg/preprocess"
)

// LowerBounds holds the four station count bounds of one problem.
type LowerBounds struct {
	LM1  int `json:"lm1" bson:"lm1"`
	LMS1 int `json:"lms1" bson:"lms1"`
	LM2  int `json:"lm2" bson:"lm2"`
	LM3  int `json:"lm3" bson:"lm3"`
}

// Best returns the strongest bound.
func (b LowerBounds) Best() int {
	return max(b.LM1, b.LMS1, b.LM2, b.LM3)
}

// String formats the bounds as "lm1 lms1 lm2 lm3 best".
func (b LowerBounds) String() string {
	return fmt.Sprintf("%d %d %d %d %d", b.LM1, b.LMS1, b.LM2, b.LM3, b.Best())
}

// Compute evaluates every bound for p.
func Compute(p *preprocess.Problem) LowerBounds {
	return LowerBounds{
		LM1:  LM1(p),
		LMS1: LMS1(p),
		LM2:  LM2(p),
		LM3:  LM3(p),
	}
}

// LM1 returns ceil(sum t / c).
func LM1(p *preprocess.Problem) int {
	return preprocess.CeilDiv(p.TotalTime, p.C())
}

// LMS1 returns the setup-aware bound. Instances with directed setups also
// account for one backward setup per station.
func LMS1(p *preprocess.Problem) int {
	if p.Instance.Directed {
		return LMS1Directed(p)
	}
	return LMS1Forward(p)
}

// LMS1Directed starts from m = LM1 stations. An m-station solution pays at
// least the n-m cheapest forward setups and the m cheapest backward setups;
// while that does not fit into m cycles, m grows by one, giving up the most
// expensive remaining forward setup and adding the next backward setup.
func LMS1Directed(p *preprocess.Problem) int {
	n, c := p.N(), p.C()
	sf, sb := p.Setups.Forward, p.Setups.Backward

	m := LM1(p)
	forward := sf.Prefix(n - m)
	backward := sb.Prefix(m)
	capacity := c * m

	for p.TotalTime+forward+backward > capacity {
		if k := n - m - 1; k >= 0 {
			forward -= sf.At(k)
		}
		capacity += c
		if m < n {
			backward += sb.At(m)
		}
		m++
	}
	return m
}

// LMS1Forward is the forward-only variant: with m stations at least n+1-m
// forward setups are paid.
func LMS1Forward(p *preprocess.Problem) int {
	n, c := p.N(), p.C()
	sf := p.Setups.Forward

	m := LM1(p)
	if m >= n {
		return m
	}

	// forward is the sum of the n+1-m smallest entries; each extra station
	// drops the largest of them.
	forward := sf.Prefix(n + 1 - m)
	capacity := c * m
	for p.TotalTime+forward > capacity {
		if k := n - m; k >= 0 && k < n {
			forward -= sf.At(k)
		}
		m++
		capacity += c
	}
	return m
}

// LM2 counts the tasks that need a station of their own (2t > c) plus one
// station per pair of half-cycle tasks (2t == c).
func LM2(p *preprocess.Problem) int {
	c := p.C()
	large, half := 0, 0
	for _, t := range p.Instance.T {
		switch {
		case 2*t > c:
			large++
		case 2*t == c:
			half++
		}
	}
	return large + preprocess.CeilDiv(half, 2)
}

// LM3 weights tasks by the share of a station they occupy at least:
// more than two thirds counts 6, exactly two thirds 4, more than a third 3
// and exactly a third 2. The bound is the weighted sum over 6, rounded up.
func LM3(p *preprocess.Problem) int {
	c := p.C()
	total := 0
	for _, t := range p.Instance.T {
		switch {
		case 3*t > 2*c:
			total += 6
		case 3*t == 2*c:
			total += 4
		case 3*t > c:
			total += 3
		case 3*t == c:
			total += 2
		}
	}
	return preprocess.CeilDiv(total, 6)
}
