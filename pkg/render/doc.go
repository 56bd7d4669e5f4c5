// Package render converts rendered SVG documents to other formats.
//
// # Overview
//
// The renderers in the subpackages all produce SVG. This package turns that
// SVG into PDF or PNG using the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l, sink.WithHighlight(h))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Subpackages
//
//   - [sink]: SVG, JSON and terminal text output for a projected tree
//   - [nodelink]: Graphviz DOT output with pinned node positions
//
// [sink]: github.com/matzehuels/bstviz/pkg/render/sink
// [nodelink]: github.com/matzehuels/bstviz/pkg/render/nodelink
package render
