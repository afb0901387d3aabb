package cache

// ScopedKeyer prefixes every key of an inner Keyer. The API server uses it
// to keep its entries apart from CLI entries when both share one Redis.
//
//	keyer := NewScopedKeyer(nil, "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecordsKey implements Keyer.
func (k *ScopedKeyer) RecordsKey(sourceHash string, opts RecordsKeyOpts) string {
	return k.prefix + k.inner.RecordsKey(sourceHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(modelHash, opts)
}
