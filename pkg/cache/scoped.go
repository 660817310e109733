package cache

// ScopedKeyer wraps a Keyer with a prefix so that several libscope
// deployments can share one Redis database or Mongo collection.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "libscope:staging:")
//	keyer.ExamplesKey("requests") // "libscope:staging:examples:requests"
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ExamplesKey generates a prefixed key for aggregated examples.
func (k *ScopedKeyer) ExamplesKey(library string) string {
	return k.prefix + k.inner.ExamplesKey(library)
}

// DiagramKey generates a prefixed key for rendered diagrams.
func (k *ScopedKeyer) DiagramKey(library, format, version string) string {
	return k.prefix + k.inner.DiagramKey(library, format, version)
}
