// Package pkg provides the libraries behind assetgraph, a tool that lays out
// and renders graphs of financial assets and their typed relationships.
//
// # Architecture
//
// The typical data flow:
//
//	graph document (JSON)
//	         ↓
//	    [asset] package (graph model, traversal, document I/O)
//	         ↓
//	    [index] package (relationships grouped by asset and type, cached)
//	         ↓
//	    [layout] package (circular, grid, spring positions)
//	         ↓
//	    [validate] package (positions, ids, colors, labels, filters)
//	         ↓
//	    [trace] package (figure specification)
//	         ↓
//	    [render/nodelink] package (DOT, SVG)
//
// # Quick Start
//
//	g, _ := asset.ReadGraphFile("portfolio.json")
//	fig, err := trace.Visualize2D(ctx, g, "circular", map[string]bool{"sector": false})
//	if err != nil {
//	    return err
//	}
//	svg, _ := nodelink.RenderSVG(ctx, nodelink.ToDOT(fig, nodelink.Options{}))
//
// # Main Packages
//
// [asset] holds assets and outgoing relationships behind an RWMutex. Each
// graph has a random identity used to key caches and a mutation counter.
//
// [index] groups relationships by source asset and type. [index.Cache]
// builds an index once per graph, even under concurrent requests, and keeps
// it until refreshed.
//
// [layout] computes deterministic positions. Spring layouts are a
// Fruchterman-Reingold simulation in three dimensions; the 2D variant drops z.
//
// [trace] composes figures: one node trace per asset, one edge trace per
// relationship, visibility from filters and a title with the visible count.
//
// # Infrastructure
//
// [cache] stores figures and artifacts (null, file, redis). [pipeline] runs
// compose and render with caching. [observability] exposes hooks for index
// builds, layouts, validation failures and cache events. [errors] carries the
// error codes callers map to exit statuses and HTTP responses.
package pkg
