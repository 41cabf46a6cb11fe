package trace

import (
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/index"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/observability"
	"github.com/matzehuels/assetgraph/pkg/validate"
)

// Composer turns graphs into figure specifications.
//
// The zero value is usable: without a Cache every call builds a fresh index,
// without a Logger nothing is logged and an empty Title selects DefaultTitle.
// A Composer is safe for concurrent use.
type Composer struct {
	Cache  *index.Cache
	Logger *log.Logger
	Spring layout.SpringOptions
	Title  string
}

var defaultComposer = &Composer{Cache: index.NewCache()}

// Visualize3D renders g in three dimensions with the default composer.
func Visualize3D(ctx context.Context, g asset.Reader, layoutName string, filters map[string]bool) (*FigureSpec, error) {
	return defaultComposer.Visualize3D(ctx, g, layoutName, filters)
}

// Visualize2D renders g in two dimensions with the default composer.
func Visualize2D(ctx context.Context, g asset.Reader, layoutName string, filters map[string]bool) (*FigureSpec, error) {
	return defaultComposer.Visualize2D(ctx, g, layoutName, filters)
}

// Visualize3D renders g in three dimensions. An empty layout name selects
// the spring layout.
func (c *Composer) Visualize3D(ctx context.Context, g asset.Reader, layoutName string, filters map[string]bool) (*FigureSpec, error) {
	return c.Visualize(ctx, g, layoutName, 3, filters)
}

// Visualize2D renders g in two dimensions. An empty layout name selects the
// spring layout.
func (c *Composer) Visualize2D(ctx context.Context, g asset.Reader, layoutName string, filters map[string]bool) (*FigureSpec, error) {
	return c.Visualize(ctx, g, layoutName, 2, filters)
}

// Visualize renders g with dims dimensions.
//
// Checks run before any work they guard: the layout name and dimension first,
// then the graph capability, then the filters. Only then is the index fetched
// and the layout computed. Positions, ids, colors and hover texts are
// validated before traces are assembled. An empty graph yields an empty
// figure, not an error.
func (c *Composer) Visualize(ctx context.Context, g asset.Reader, layoutName string, dims int, filters map[string]bool) (*FigureSpec, error) {
	if layoutName == "" {
		layoutName = layout.DefaultLayout
	}
	place, err := layout.LookupWith(layoutName, dims, c.Spring)
	if err != nil {
		return nil, err
	}
	if err := asset.CheckCapability(g); err != nil {
		return nil, err
	}
	known := KnownTypes(g)
	if err := validate.Filters(filters, known); err != nil {
		return nil, c.rejected(ctx, "filters", err)
	}

	idx, err := c.index(ctx, g)
	if err != nil {
		return nil, err
	}

	ids := g.AssetIDs()
	var rels []asset.Relationship
	for _, id := range idx.AssetIDs() {
		for _, typ := range idx.Types(id) {
			rels = append(rels, idx.Relationships(id, typ)...)
		}
	}

	hooks := observability.Visualize()
	hooks.OnLayoutStart(ctx, layoutName, dims, len(ids))
	start := time.Now()
	pos := place(ids, layout.FromRelationships(rels))
	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, layoutName, dims, elapsed, nil)

	m, placed := pos.Matrix(ids, dims)
	if err := validate.Positions(m); err != nil {
		return nil, c.rejected(ctx, "positions", err)
	}
	if err := validate.AssetIDs(placed); err != nil {
		return nil, c.rejected(ctx, "asset_ids", err)
	}

	assets := make([]asset.Asset, len(placed))
	colors := make([]string, len(placed))
	hovers := make([]string, len(placed))
	row := make(map[string]int, len(placed))
	for i, id := range placed {
		a, _ := g.Asset(id)
		if a.ID == "" {
			a.ID = id
		}
		assets[i] = a
		colors[i] = AssetColor(a)
		hovers[i] = assetHover(a, countOutgoing(idx, id))
		row[id] = i
	}
	if err := validate.Colors(colors, len(placed)); err != nil {
		return nil, c.rejected(ctx, "colors", err)
	}
	if err := validate.HoverTexts(hovers, len(placed)); err != nil {
		return nil, c.rejected(ctx, "hover_texts", err)
	}

	traces := make([]Trace, 0, len(placed)+len(rels))
	for i, a := range assets {
		traces = append(traces, Trace{
			Kind:      KindNode,
			Name:      a.ID,
			AssetID:   a.ID,
			Class:     string(a.Class),
			Positions: [][]float64{slices.Clone(m.Row(i))},
			Color:     colors[i],
			HoverText: hovers[i],
			Visible:   true,
		})
	}
	for _, r := range rels {
		si, ok1 := row[r.Source]
		ti, ok2 := row[r.Target]
		if !ok1 || !ok2 {
			continue
		}
		traces = append(traces, Trace{
			Kind:             KindEdge,
			Name:             r.Source + " -> " + r.Target,
			RelationshipType: r.Type,
			Source:           r.Source,
			Target:           r.Target,
			Weight:           r.Weight,
			Positions:        [][]float64{slices.Clone(m.Row(si)), slices.Clone(m.Row(ti))},
			Color:            RelationshipColor(r.Type),
			HoverText:        relationshipHover(r),
			Visible:          Enabled(filters, r.Type),
		})
	}

	fig := &FigureSpec{
		Dimensions:        dims,
		Layout:            layoutName,
		Traces:            traces,
		AssetCount:        len(placed),
		RelationshipCount: len(traces) - len(placed),
	}
	fig.VisibleRelationships = CalculateVisibleRelationships(traces, filters)
	fig.Title = GenerateDynamicTitle(c.title(), fig.AssetCount, fig.VisibleRelationships)

	c.logger().Debug("figure composed",
		"layout", layoutName, "dims", dims,
		"assets", fig.AssetCount, "relationships", fig.RelationshipCount,
		"visible", fig.VisibleRelationships, "duration", elapsed)
	return fig, nil
}

func (c *Composer) index(ctx context.Context, g asset.Reader) (*index.Index, error) {
	if c.Cache != nil {
		return c.Cache.Get(ctx, g, false)
	}
	start := time.Now()
	idx, err := index.Build(g, nil)
	count := 0
	if idx != nil {
		count = idx.Len()
	}
	observability.Visualize().OnIndexBuild(ctx, g.ID(), count, time.Since(start), err)
	return idx, err
}

// rejected reports a validation failure to the hooks and returns err.
func (c *Composer) rejected(ctx context.Context, field string, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		field = ve.Field
	}
	observability.Visualize().OnValidationFailure(ctx, field, err)
	c.logger().Debug("figure rejected", "field", field, "err", err)
	return err
}

func (c *Composer) title() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

var discard = log.NewWithOptions(io.Discard, log.Options{})

func (c *Composer) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

// KnownTypes returns the relationship types a filter may name: the registry
// plus any type g uses.
func KnownTypes(g asset.Reader) []string {
	known := asset.KnownRelationshipTypes()
	for _, t := range g.RelationshipTypes() {
		if !slices.Contains(known, t) {
			known = append(known, t)
		}
	}
	return known
}

func countOutgoing(idx *index.Index, id string) int {
	n := 0
	for _, typ := range idx.Types(id) {
		n += len(idx.Relationships(id, typ))
	}
	return n
}
