// Package trace assembles figure specifications from an asset graph.
//
// A [FigureSpec] is a renderer-neutral description of a graph plot: one node
// trace per asset, one edge trace per relationship, a title and the number of
// relationships left visible by the active filters. The [Composer] drives the
// whole pipeline: it resolves the layout, reuses or builds the relationship
// index, computes positions, validates everything it is about to emit and
// only then assembles traces.
//
//	fig, err := trace.Visualize2D(ctx, g, "circular", map[string]bool{"sector": false})
//	fmt.Println(fig.Title) // Asset Relationships (3 assets, 1 relationship)
package trace

import (
	"fmt"
)

// Kind distinguishes node traces from edge traces.
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// DefaultTitle is the base title used when a composer does not set one.
const DefaultTitle = "Asset Relationships"

// Trace is a renderable unit: a single asset marker or a single relationship
// segment.
type Trace struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// Node traces
	AssetID string `json:"asset_id,omitempty"`
	Class   string `json:"class,omitempty"`

	// Edge traces
	RelationshipType string  `json:"relationship_type,omitempty"`
	Source           string  `json:"source,omitempty"`
	Target           string  `json:"target,omitempty"`
	Weight           float64 `json:"weight,omitempty"`

	// Positions holds one row per point: a node has one, an edge has two
	// (source then target). Rows have 2 or 3 columns.
	Positions [][]float64 `json:"positions"`
	Color     string      `json:"color"`
	HoverText string      `json:"hover_text"`
	Visible   bool        `json:"visible"`
}

// FigureSpec is the output of a visualization: ordered traces plus summary
// data for the presentation layer.
type FigureSpec struct {
	Title                string  `json:"title"`
	Dimensions           int     `json:"dimensions"`
	Layout               string  `json:"layout"`
	Traces               []Trace `json:"traces"`
	AssetCount           int     `json:"asset_count"`
	RelationshipCount    int     `json:"relationship_count"`
	VisibleRelationships int     `json:"visible_relationships"`
}

// NodeTraces returns the node traces in figure order.
func (f *FigureSpec) NodeTraces() []Trace { return f.byKind(KindNode) }

// EdgeTraces returns the edge traces in figure order.
func (f *FigureSpec) EdgeTraces() []Trace { return f.byKind(KindEdge) }

func (f *FigureSpec) byKind(k Kind) []Trace {
	var out []Trace
	for _, t := range f.Traces {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Enabled reports whether relationships of type typ are shown under filters.
// A nil filter map enables everything, and a type missing from the map is
// enabled.
func Enabled(filters map[string]bool, typ string) bool {
	on, ok := filters[typ]
	return !ok || on
}

// CalculateVisibleRelationships counts the edge traces whose relationship type
// is enabled by filters.
func CalculateVisibleRelationships(traces []Trace, filters map[string]bool) int {
	n := 0
	for _, t := range traces {
		if t.Kind == KindEdge && Enabled(filters, t.RelationshipType) {
			n++
		}
	}
	return n
}

// GenerateDynamicTitle formats "<base> (<n> asset(s), <m> relationship(s))"
// with singular forms for a count of exactly one.
func GenerateDynamicTitle(base string, assets, relationships int) string {
	return fmt.Sprintf("%s (%s, %s)", base,
		plural(assets, "asset", "assets"),
		plural(relationships, "relationship", "relationships"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
