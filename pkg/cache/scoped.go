package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several tenants or
// deployments can share one Redis instance without colliding.
//
//	keyer := cache.NewScopedKeyer(nil, "assetgraph:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FigureKey returns the prefixed figure key.
func (k *ScopedKeyer) FigureKey(graphHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(graphHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(figureHash, opts)
}
