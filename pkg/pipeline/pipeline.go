// Package pipeline provides the core enumeration pipeline.
//
// This package implements the complete load → enumerate → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a presentation from a manifest or inline options and
//     compile it over the generator alphabet
//  2. Enumerate: Run the coset enumeration to closure
//  3. Render: Generate output in various formats (table, JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
// Enumeration results and rendered artifacts are cached by content hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Generators: []string{"a", "b"},
//	    Relators:   []string{"a^2", "b^2", "(a*b)^3"},
//	    Formats:    []string{"table"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["table"]))
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/igarnier/cosetta/pkg/coset"
)

// DefaultMaxCosets bounds enumeration runs that never close, such as
// presentations of infinite groups. Each allocated coset costs one table row,
// so a million cosets is tens of megabytes.
const DefaultMaxCosets = 1_000_000

// Format constants for output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTable: true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPNG:   true,
}

// Options contains all configuration for the enumeration pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. A manifest path takes precedence over the inline
	// presentation fields.
	Manifest   string   `json:"-"`
	Name       string   `json:"name,omitempty"`
	Generators []string `json:"generators,omitempty"`
	Relators   []string `json:"relators,omitempty"`
	Subgroup   []string `json:"subgroup,omitempty"`

	// Enumeration options
	MaxCosets int  `json:"max_cosets,omitempty"`
	Refresh   bool `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger              `json:"-"`
	Progress func(coset.ProgressInfo) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the finished enumeration in renumbered form.
	Snapshot *coset.Snapshot

	// PresentationHash is the content hash of the compiled presentation.
	PresentationHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Index         int
	Allocated     int
	EnumerateTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TableHit  bool // Whether the coset table came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: table, json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetEnumerateDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Manifest == "" && len(o.Generators) == 0 {
		return fmt.Errorf("manifest or generators is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetEnumerateDefaults sets default values for the enumeration stage.
func (o *Options) SetEnumerateDefaults() {
	if o.MaxCosets == 0 {
		o.MaxCosets = DefaultMaxCosets
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTable}
	}
}
