// Package cache provides pluggable result caching for enumeration runs.
//
// Coset enumeration is deterministic: the same compiled presentation and the
// same coset limit always produce the same table. That makes finished tables
// ideal cache entries, keyed by a hash of the canonical presentation. The
// package ships a file-backed cache for CLI usage, a Redis-backed cache for
// server deployments, and a null cache for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Tables and artifacts are pure functions of
// their keys, so they keep long TTLs and rely on eviction by key change.
const (
	TTLTable    = 180 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the two cacheable pipeline stages.
type Keyer interface {
	// TableKey generates a key for a completed coset table.
	TableKey(presentationHash string, opts TableKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(tableHash string, opts ArtifactKeyOpts) string
}

// TableKeyOpts are the enumeration parameters that affect the cached table.
type TableKeyOpts struct {
	// MaxCosets is part of the key because a run that aborted at a lower
	// limit must not shadow a run that closed at a higher one.
	MaxCosets int
}

// ArtifactKeyOpts are the rendering parameters that affect the artifact.
type ArtifactKeyOpts struct {
	Format string // "dot", "svg", "png"
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TableKey generates a key for a completed coset table.
func (k *DefaultKeyer) TableKey(presentationHash string, opts TableKeyOpts) string {
	return hashKey("table", presentationHash, opts.MaxCosets)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(tableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tableHash, opts.Format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
