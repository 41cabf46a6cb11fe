package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/assetgraph/pkg/trace"
	"github.com/matzehuels/assetgraph/pkg/validate"
)

// DefaultScale is the number of inches per layout unit.
const DefaultScale = 2.0

// Options configures node-link diagram rendering.
type Options struct {
	// Scale converts layout units to inches. Zero selects DefaultScale.
	Scale float64
	// ShowHidden draws relationships disabled by filters as invisible edges
	// instead of omitting them, so they still appear in the DOT source.
	ShowHidden bool
	// Detailed uses the hover text as node label instead of the asset id.
	Detailed bool
}

// ToDOT converts a figure to Graphviz DOT source with pinned node positions.
func ToDOT(fig *trace.FigureSpec, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if fig.Title != "" {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=t;\n  fontsize=20;\n", quote(fig.Title))
	}
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.45, fontsize=9, fontcolor=white, penwidth=0];\n")
	buf.WriteString("  edge [arrowsize=0.6, penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, t := range fig.NodeTraces() {
		if len(t.Positions) == 0 {
			continue
		}
		label := t.AssetID
		if opts.Detailed {
			label = t.HoverText
		}
		p := t.Positions[0]
		attrs := []string{
			"label=" + quote(label),
			fmt.Sprintf("pos=\"%s,%s!\"", coord(p[0]*scale), coord(p[1]*scale)),
			"fillcolor=" + quote(dotColor(t.Color)),
			"tooltip=" + quote(t.HoverText),
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(t.AssetID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, t := range fig.EdgeTraces() {
		if !t.Visible && !opts.ShowHidden {
			continue
		}
		attrs := []string{
			"color=" + quote(dotColor(t.Color)),
			"tooltip=" + quote(t.HoverText),
		}
		if !t.Visible {
			attrs = append(attrs, "style=invis")
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(t.Source), quote(t.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotEscaper escapes the characters a DOT quoted string treats specially.
// Newlines become the \n line break; every other rune is written as is.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", "")

// quote returns s as a DOT quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// dotColor converts a validated figure color to hex. Colors that fail to
// parse fall back to grey.
func dotColor(s string) string {
	c, err := validate.ParseColor(s)
	if err != nil {
		return "#7f7f7f"
	}
	return validate.Hex(c)
}

// RenderSVG renders DOT source to SVG with the neato engine, honoring pinned
// positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match its viewBox, so the SVG scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
