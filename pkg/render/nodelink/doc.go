// Package nodelink renders trees as Graphviz node-link diagrams.
//
// # Overview
//
// This package produces Graphviz DOT source for a projected tree and renders
// it in-process. Node positions come from the layout projector and are
// pinned, so Graphviz only draws; it never re-arranges the tree.
//
// # Usage
//
//	l := layout.ProjectTree(t, x, y, spacing)
//	dot := nodelink.ToDOT(l, highlight.Found(40), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the depth below the value
//   - Palette: fill colours per highlight state
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine,
// which honours pinned "pos" attributes.
package nodelink
