package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get separate
// cache namespaces. The serve command uses this to keep its entries apart
// from other applications sharing the same Redis instance.
//
// Example usage:
//
//	// Keys namespaced per application
//	appKeyer := NewScopedKeyer(NewDefaultKeyer(), "cosetta:")
//
//	// Unprefixed keys for a private cache directory
//	localKeyer := NewDefaultKeyer()
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

// TableKey generates a prefixed key for a completed coset table.
func (k *ScopedKeyer) TableKey(presentationHash string, opts TableKeyOpts) string {
	return k.prefix + k.inner.TableKey(presentationHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tableHash, opts)
}
