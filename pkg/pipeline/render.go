package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/observability"
	"github.com/matzehuels/assetgraph/pkg/render/nodelink"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

// Render serializes fig in every requested format.
func (r *Runner) Render(ctx context.Context, fig *trace.FigureSpec, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	figJSON, err := json.Marshal(fig)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, fig, figJSON, format, opts)
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

// RenderWithCacheInfo renders fig in every requested format, reusing cached
// artifacts. The bool reports whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fig *trace.FigureSpec, figJSON []byte, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	figureHash := cache.Hash(figJSON)

	out := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(figureHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok, _ := r.Cache.Get(ctx, key); ok {
				hooks.OnCacheHit(ctx, "artifact")
				out[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, err := renderFormat(ctx, fig, figJSON, format, opts)
		if err != nil {
			return nil, false, err
		}
		out[format] = data
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("artifact not cached", "format", format, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return out, allHit, nil
}

func renderFormat(ctx context.Context, fig *trace.FigureSpec, figJSON []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, figJSON, "", "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(fig, nodelink.Options{ShowHidden: opts.ShowHidden})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(fig, nodelink.Options{ShowHidden: opts.ShowHidden}))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
