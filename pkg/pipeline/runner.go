package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/index"
)

// =============================================================================
// Runner - Stateful Pipeline Executor
// =============================================================================

// Runner executes pipeline stages with caching support.
//
// A Runner holds the figure cache, the key generator, the relationship index
// cache and a logger. The index cache lives as long as the Runner, so a
// long-running host composes repeated figures of the same graph instance
// without regrouping its relationships.
//
// A Runner is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Index  *index.Cache
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a pipeline runner. Nil arguments select a NullCache,
// the default keyer and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Index:  index.NewCache(index.WithLogger(logger)),
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Close closes the underlying cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Execute composes g into a figure and renders every requested format.
// The layout name, dimensions and formats are checked before the graph is
// touched.
func (r *Runner) Execute(ctx context.Context, g *asset.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := asset.CheckCapability(g); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("run", result.ID[:8])

	doc, err := asset.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	result.GraphHash = cache.Hash(doc)

	start := time.Now()
	fig, figJSON, hit, err := r.ComposeWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Figure = fig
	result.CacheInfo.FigureHit = hit
	result.Stats.ComposeTime = time.Since(start)
	result.Stats.AssetCount = fig.AssetCount
	result.Stats.RelationshipCount = fig.RelationshipCount
	result.Stats.VisibleRelationships = fig.VisibleRelationships
	logger.Info("Composed figure",
		"assets", fig.AssetCount,
		"relationships", fig.RelationshipCount,
		"visible", fig.VisibleRelationships,
		"cached", hit,
		"duration", result.Stats.ComposeTime)

	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, fig, figJSON, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(start)
	logger.Info("Rendered",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}
