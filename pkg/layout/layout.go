// Package layout computes deterministic spatial positions for asset ids.
//
// Every layout is a pure function from an ordered id list (plus, for the
// force-directed layouts, the relationships between them) to a [Positions]
// map. No function keeps state between calls or takes a lock, so layouts may
// run in parallel against the same graph.
//
// Three layouts are registered under a name and can be resolved with
// [Lookup]:
//
//   - circular: points on a circle whose radius grows logarithmically with n
//   - grid: row-major placement on a ceil(sqrt(n)) column grid
//   - spring: Fruchterman-Reingold force simulation in 3D; the 2D variant
//     projects the 3D result so both views agree
//
// Coordinates are always finite for finite input.
package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// Layout names.
const (
	Circular = "circular"
	Grid     = "grid"
	Spring   = "spring"
)

// DefaultLayout is used when a caller does not name one.
const DefaultLayout = Spring

// Point is a coordinate. Two-dimensional layouts leave Z at zero.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Positions maps asset id to coordinate.
type Positions map[string]Point

// Edge is an undirected attraction between two ids used by the spring layouts.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// FromRelationships converts relationships to layout edges.
func FromRelationships(rels []asset.Relationship) []Edge {
	edges := make([]Edge, len(rels))
	for i, r := range rels {
		edges[i] = Edge{Source: r.Source, Target: r.Target, Weight: r.Weight}
	}
	return edges
}

// Func computes positions for ids. Layouts that ignore relationships accept
// nil edges.
type Func func(ids []string, edges []Edge) Positions

// Supported returns the layout names available for dims, sorted. It returns
// nil for dimensions other than 2 and 3.
func Supported(dims int) []string {
	if dims != 2 && dims != 3 {
		return nil
	}
	return []string{Circular, Grid, Spring}
}

// Lookup resolves a layout by name using default spring options.
func Lookup(name string, dims int) (Func, error) {
	return LookupWith(name, dims, SpringOptions{})
}

// LookupWith resolves a layout by name. The dimension is checked first
// (VALIDATION), then the name (UNSUPPORTED_LAYOUT).
func LookupWith(name string, dims int, opts SpringOptions) (Func, error) {
	if dims != 2 && dims != 3 {
		return nil, apperr.Invalid("dimensions", "2 or 3", dims)
	}
	switch name {
	case Circular:
		return func(ids []string, _ []Edge) Positions { return CircularLayout(ids) }, nil
	case Grid:
		return func(ids []string, _ []Edge) Positions { return GridLayout(ids) }, nil
	case Spring:
		if dims == 2 {
			return func(ids []string, edges []Edge) Positions { return Spring2D(ids, edges, opts) }, nil
		}
		return func(ids []string, edges []Edge) Positions { return Spring3D(ids, edges, opts) }, nil
	}
	return nil, apperr.UnsupportedLayout(name, Supported(dims))
}

// IsSupported reports whether name is a registered layout.
func IsSupported(name string) bool {
	return slices.Contains(Supported(2), name)
}

// Bounds returns the largest absolute coordinate in p. Empty positions give 0.
func (p Positions) Bounds() float64 {
	var m float64
	for _, pt := range p {
		m = max(m, math.Abs(pt.X), math.Abs(pt.Y), math.Abs(pt.Z))
	}
	return m
}

// Finite reports whether every coordinate in p is a finite number.
func (p Positions) Finite() bool {
	for _, pt := range p {
		for _, v := range [...]float64{pt.X, pt.Y, pt.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// unique drops repeated ids, keeping first occurrences in order.
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
