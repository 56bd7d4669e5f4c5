package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/render"
)

// pointsPerInch converts layout units (pixels) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node depth to each label.
	Detailed bool

	// Palette overrides fill colours; empty fields use the default palette.
	Palette highlight.Palette
}

// ToDOT converts a projected tree to Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Layout y grows downwards while Graphviz y grows upwards, so y is negated.
func ToDOT(l layout.Layout, h highlight.Highlight, opts Options) string {
	palette := opts.Palette.Merge(highlight.DefaultPalette())

	var buf bytes.Buffer
	buf.WriteString("digraph BST {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=0.55, penwidth=2, color=%q, fontcolor=%q];\n",
		palette.Stroke, palette.Text)
	fmt.Fprintf(&buf, "  edge [arrowhead=none, penwidth=2, color=%q];\n", palette.Stroke)
	buf.WriteString("\n")

	for _, p := range l.Nodes {
		state := h.Classify(p.Value)
		attrs := fmtAttrs(p, fmtLabel(p, opts.Detailed), palette.Fill(state))
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", p.Value, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  \"%d\" -> \"%d\";\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p layout.Point, detailed bool) string {
	if !detailed {
		return strconv.Itoa(p.Value)
	}
	return fmt.Sprintf("%d\ndepth %d", p.Value, p.Depth)
}

func fmtAttrs(p layout.Point, label, fill string) []string {
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X/pointsPerInch, -p.Y/pointsPerInch),
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
