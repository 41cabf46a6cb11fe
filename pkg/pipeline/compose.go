package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/observability"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

// Compose builds the figure for g without consulting the figure cache.
// With Refresh set the relationship index is rebuilt first.
func (r *Runner) Compose(ctx context.Context, g *asset.Graph, opts Options) (*trace.FigureSpec, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Refresh {
		if _, err := r.Index.Get(ctx, g, true); err != nil {
			return nil, err
		}
	}
	composer := &trace.Composer{
		Cache:  r.Index,
		Logger: opts.Logger,
		Spring: layout.SpringOptions{Iterations: opts.Iterations},
		Title:  opts.Title,
	}
	return composer.Visualize(ctx, g, opts.Layout, opts.Dimensions, opts.Filters)
}

// ComposeWithCacheInfo returns the figure for g, its JSON encoding and
// whether it came from the cache. Refresh bypasses the cache read but still
// stores the new figure.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, g *asset.Graph, graphHash string, opts Options) (*trace.FigureSpec, []byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	hooks := observability.Cache()
	key := r.Keyer.FigureKey(graphHash, opts.FigureKeyOpts())

	if !opts.Refresh {
		if data, ok, _ := r.Cache.Get(ctx, key); ok {
			var fig trace.FigureSpec
			if err := json.Unmarshal(data, &fig); err == nil {
				hooks.OnCacheHit(ctx, "figure")
				return &fig, data, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached figure", "key", key)
		}
		hooks.OnCacheMiss(ctx, "figure")
	}

	fig, err := r.Compose(ctx, g, opts)
	if err != nil {
		return nil, nil, false, err
	}
	data, err := json.Marshal(fig)
	if err != nil {
		return nil, nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("figure not cached", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "figure", len(data))
	}
	return fig, data, false, nil
}
