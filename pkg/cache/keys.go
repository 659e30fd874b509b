package cache

// SolveKeyOpts are the solver options that change a sampled solution.
type SolveKeyOpts struct {
	Seed       uint64 `json:"seed"`
	Iterations int    `json:"iterations"`
	// Parallel selects per-trial streams; the worker count itself does not
	// change the result.
	Parallel bool `json:"parallel"`
}

// Keyer builds cache keys from an instance content hash.
type Keyer interface {
	// BoundsKey addresses the lower bounds of an instance.
	BoundsKey(instanceHash string) string
	// SolveKey addresses a heuristic solution of an instance.
	SolveKey(instanceHash string, opts SolveKeyOpts) string
}

// DefaultKeyer produces "bounds:<hash>" and "solve:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BoundsKey implements Keyer.
func (DefaultKeyer) BoundsKey(instanceHash string) string {
	return hashKey("bounds", instanceHash)
}

// SolveKey implements Keyer.
func (DefaultKeyer) SolveKey(instanceHash string, opts SolveKeyOpts) string {
	return hashKey("solve", instanceHash, opts)
}

var _ Keyer = DefaultKeyer{}
