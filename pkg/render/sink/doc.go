// Package sink turns a projected tree layout into output bytes.
//
// Three sinks are provided:
//
//   - [RenderSVG]: a standalone SVG document with circles, labels and edges.
//   - [RenderJSON]: the layout plus per-node highlight state, for front ends
//     that draw on their own canvas.
//   - [RenderText]: a character grid for terminals, optionally coloured.
//
// Every sink takes the highlight from the caller. The layout itself carries
// no colour information.
//
//	l := layout.ProjectTree(t, x, y, spacing)
//	svg := sink.RenderSVG(l, sink.WithHighlight(highlight.Found(40)))
package sink
