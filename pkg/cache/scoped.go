package cache

// ScopedKeyer wraps a Keyer with a prefix. Instances of the HTTP server that
// share a Redis database but serve different deployments use it to keep
// their entries apart.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "bluefish:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
