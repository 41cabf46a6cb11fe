// Package nodelink renders figure specifications as node-link diagrams.
//
// # Overview
//
// A figure's positions are already computed by the layout engine, so the
// generated Graphviz source pins every node (pos="x,y!") and renders with the
// neato engine, which keeps pinned nodes in place and only routes edges.
// Three-dimensional figures are projected onto the x/y plane.
//
// # Usage
//
//	dot := nodelink.ToDOT(fig, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Colors
//
// Figure colors may use CSS syntax that Graphviz does not understand
// (rgb(), rgba(), CSS keywords). [ToDOT] normalizes every color to
// #rrggbb or #rrggbbaa.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
