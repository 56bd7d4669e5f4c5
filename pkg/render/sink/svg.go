package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/view"
)

// Drawing defaults.
const (
	DefaultRadius = 20.0
	strokeWidth   = 2.0
	fitMargin     = 10.0
)

const nodeCSS = `
    .edge { stroke-linecap: round; }
    .node { transition: stroke-width 0.2s ease; }
    .node:hover { stroke-width: 4; }
    .label { font-family: sans-serif; font-size: 14px; pointer-events: none; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	highlight highlight.Highlight
	palette   highlight.Palette
	view      view.View
	width     float64
	height    float64
	radius    float64
}

func WithHighlight(h highlight.Highlight) SVGOption {
	return func(r *svgRenderer) { r.highlight = h }
}
func WithPalette(p highlight.Palette) SVGOption {
	return func(r *svgRenderer) { r.palette = p.Merge(highlight.DefaultPalette()) }
}
func WithView(v view.View) SVGOption { return func(r *svgRenderer) { r.view = v } }
func WithRadius(radius float64) SVGOption {
	return func(r *svgRenderer) {
		if radius > 0 {
			r.radius = radius
		}
	}
}

// WithSize renders onto a fixed canvas. The view is then applied as-is,
// like a pannable canvas; without it the document is cropped to the tree.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// RenderSVG renders l as an SVG document. Edges are drawn first so circles
// cover their ends, then labels on top.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width, height := r.width, r.height
	v := r.view
	if width <= 0 || height <= 0 {
		// Fit: crop to the padded bounds and ignore pan, keep zoom.
		b := l.Bounds().Pad(r.radius + strokeWidth + fitMargin)
		scale := v.Scale
		if scale == 0 {
			scale = 1
		}
		v = view.View{Scale: scale, OffsetX: -b.MinX * scale, OffsetY: -b.MinY * scale}
		width, height = b.Width()*scale, b.Height()*scale
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeCSS)
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f %.2f) scale(%.4f)">`+"\n", v.OffsetX, v.OffsetY, scaleOf(v))

	for _, e := range l.Edges {
		fmt.Fprintf(&buf, `    <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.0f"/>`+"\n",
			e.X1, e.Y1, e.X2, e.Y2, r.palette.Stroke, strokeWidth)
	}
	for _, p := range l.Nodes {
		state := r.highlight.Classify(p.Value)
		fmt.Fprintf(&buf, `    <circle class="node %s" id="node-%d" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
			state, p.Value, p.X, p.Y, r.radius, r.palette.Fill(state), r.palette.Stroke, strokeWidth)
	}
	for _, p := range l.Nodes {
		fmt.Fprintf(&buf, `    <text class="label" x="%.2f" y="%.2f" fill="%s" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n",
			p.X, p.Y, r.palette.Text, p.Value)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		palette: highlight.DefaultPalette(),
		view:    view.Default(),
		radius:  DefaultRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func scaleOf(v view.View) float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}
