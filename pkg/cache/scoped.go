package cache

// ScopedKeyer prefixes every key of an inner Keyer. The HTTP server uses it
// to keep its entries apart from CLI entries in a shared Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix. A nil inner keyer
// defaults to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BoundsKey implements Keyer.
func (k *ScopedKeyer) BoundsKey(instanceHash string) string {
	return k.prefix + k.inner.BoundsKey(instanceHash)
}

// SolveKey implements Keyer.
func (k *ScopedKeyer) SolveKey(instanceHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(instanceHash, opts)
}
