package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/igarnier/cosetta/pkg/cache"
	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/group"
	"github.com/igarnier/cosetta/pkg/render/schreier"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → enumerate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	compiled, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.PresentationHash = cache.Hash(compiled.CanonicalBytes())

	src := compiled.Source()
	r.Logger.Info("loaded presentation",
		"name", src.Name,
		"generators", len(src.Generators),
		"relators", len(src.Relators))

	// Stage 2: Enumerate
	enumStart := time.Now()
	snap, tableHit, err := r.EnumerateWithCacheInfo(ctx, compiled, opts)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}
	result.Snapshot = snap
	result.Stats.EnumerateTime = time.Since(enumStart)
	result.Stats.Index = snap.Index
	result.Stats.Allocated = snap.Allocated
	result.CacheInfo.TableHit = tableHit

	r.Logger.Info("enumerated cosets",
		"index", snap.Index,
		"allocated", snap.Allocated,
		"cached", tableHit,
		"duration", result.Stats.EnumerateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and compiles a presentation from the options. A manifest path
// takes precedence over the inline fields.
func (r *Runner) Load(opts Options) (*group.Compiled, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	var p group.Presentation
	if opts.Manifest != "" {
		var err error
		p, err = group.LoadManifest(opts.Manifest)
		if err != nil {
			return nil, err
		}
	} else {
		p = group.Presentation{
			Name:       opts.Name,
			Generators: opts.Generators,
			Relators:   opts.Relators,
			Subgroup:   opts.Subgroup,
		}
	}
	return p.Compile()
}

// EnumerateWithCacheInfo runs the enumeration with caching and returns cache
// hit info. The cache key covers the canonical presentation and the coset
// limit, so a run that aborted at a lower limit never satisfies a request
// with a higher one.
func (r *Runner) EnumerateWithCacheInfo(ctx context.Context, compiled *group.Compiled, opts Options) (*coset.Snapshot, bool, error) {
	opts.SetEnumerateDefaults()
	r.applyLogger(&opts)

	presHash := cache.Hash(compiled.CanonicalBytes())
	cacheKey := r.Keyer.TableKey(presHash, cache.TableKeyOpts{
		MaxCosets: opts.MaxCosets,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var snap coset.Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap, true, nil // Cache hit
			}
		}
	}

	res, err := coset.Enumerate(ctx, compiled, coset.Options{
		MaxCosets: opts.MaxCosets,
		Logger:    opts.Logger,
		Progress:  opts.Progress,
	})
	if err != nil {
		return nil, false, err
	}
	snap := res.Snapshot()

	// Cache the result
	if data, err := json.Marshal(snap); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTable)
	}

	return snap, false, nil // Cache miss
}

// Enumerate is a convenience wrapper that calls EnumerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Enumerate(ctx context.Context, compiled *group.Compiled, opts Options) (*coset.Snapshot, error) {
	snap, _, err := r.EnumerateWithCacheInfo(ctx, compiled, opts)
	return snap, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap *coset.Snapshot, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	snapData, err := json.Marshal(snap)
	if err != nil {
		return nil, false, fmt.Errorf("serialize table for cache key: %w", err)
	}
	tableHash := cache.Hash(snapData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(tableHash, cache.ArtifactKeyOpts{Format: format})
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(snap, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(tableHash, cache.ArtifactKeyOpts{Format: format})
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, snap *coset.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, snap, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(snap *coset.Snapshot, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatTable:
		return []byte(snap.String()), nil
	case FormatJSON:
		return json.MarshalIndent(snap, "", "  ")
	case FormatDOT:
		return []byte(schreier.ToDOT(snap, schreier.Options{Labels: opts.EdgeLabels})), nil
	case FormatSVG:
		return schreier.RenderSVG(schreier.ToDOT(snap, schreier.Options{Labels: opts.EdgeLabels}))
	case FormatPNG:
		return schreier.RenderPNG(schreier.ToDOT(snap, schreier.Options{Labels: opts.EdgeLabels}))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
