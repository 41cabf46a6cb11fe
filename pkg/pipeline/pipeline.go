// Package pipeline runs the compose → render pipeline shared by the CLI and
// the HTTP host.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Compose: build or reuse the relationship index, lay the graph out and
//     assemble a [trace.FigureSpec]
//  2. Render: serialize the figure as JSON, Graphviz DOT or SVG
//
// Both stages are cached through [cache.Cache]. Figures are keyed by the
// content hash of the graph document plus every option that changes the
// figure; artifacts are keyed by the hash of the figure they were rendered
// from.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Dimensions: 2,
//	    Layout:     "circular",
//	    Formats:    []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/cache"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP host
// =============================================================================

const (
	// DefaultDimensions is the default figure dimensionality.
	DefaultDimensions = 2

	// DefaultLayout is the default layout name.
	DefaultLayout = layout.DefaultLayout
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. It supports JSON
// serialization for HTTP requests.
type Options struct {
	// Compose options
	Dimensions int             `json:"dimensions,omitempty"`
	Layout     string          `json:"layout,omitempty"`
	Filters    map[string]bool `json:"filters,omitempty"`
	Iterations int             `json:"iterations,omitempty"` // Spring simulation budget
	Title      string          `json:"title,omitempty"`
	Refresh    bool            `json:"refresh,omitempty"` // Rebuild the index and bypass cached figures

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowHidden bool     `json:"show_hidden,omitempty"` // Keep filtered relationships as invisible DOT edges

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Figure is the composed figure.
	Figure *trace.FigureSpec

	// GraphHash is the content hash of the input graph document.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AssetCount           int
	RelationshipCount    int
	VisibleRelationships int
	ComposeTime          time.Duration
	RenderTime           time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FigureHit bool // Whether the figure came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)",
			format, strings.Join(slices.Sorted(maps.Keys(ValidFormats)), ", "))
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

// ValidateDimensions checks that dims is 2 or 3.
func ValidateDimensions(dims int) error {
	if dims != 2 && dims != 3 {
		return apperr.Invalid("dimensions", "2 or 3", dims)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option. It is
// idempotent. The layout name is checked against the registry so an unknown
// layout fails before any graph work.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateDimensions(o.Dimensions); err != nil {
		return err
	}
	if _, err := layout.Lookup(o.Layout, o.Dimensions); err != nil {
		return err
	}
	if o.Iterations < 0 || o.Iterations > layout.MaxIterations {
		return apperr.Invalid("iterations", fmt.Sprintf("0..%d", layout.MaxIterations), o.Iterations)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Dimensions == 0 {
		o.Dimensions = DefaultDimensions
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Title == "" {
		o.Title = trace.DefaultTitle
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FigureKeyOpts returns the options that identify a cached figure.
func (o *Options) FigureKeyOpts() cache.FigureKeyOpts {
	return cache.FigureKeyOpts{
		Dimensions: o.Dimensions,
		Layout:     o.Layout,
		Filters:    o.Filters,
		Iterations: o.Iterations,
		Title:      o.Title,
	}
}

// ArtifactKeyOpts returns the options that identify a cached artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	f := format
	if format == FormatDOT || format == FormatSVG {
		if o.ShowHidden {
			f += "+hidden"
		}
	}
	return cache.ArtifactKeyOpts{Format: f}
}
