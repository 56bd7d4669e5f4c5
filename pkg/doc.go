// Package pkg provides the core libraries for bstviz, an educational
// binary search tree visualizer.
//
// # Overview
//
// bstviz stores unique integers in an unbalanced binary search tree, runs
// the classic traversals over it, and draws it as a node-link diagram whose
// children fan out beneath their parent. The pkg directory is organized
// into three areas:
//
//  1. Domain: [bst] (tree engine), [layout] (position projection),
//     [highlight] (search and traversal emphasis), [view] (pan and zoom)
//  2. Rendering: [render/sink] (SVG, JSON, text), [render/nodelink]
//     (Graphviz), [render] (PDF/PNG conversion), [pipeline] (orchestration)
//  3. Support: [session] (tree plus view plus operation log), [config],
//     [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through bstviz:
//
//	insert / delete / search / traverse
//	         ↓
//	    [bst] package (tree state)
//	         ↓
//	    [highlight] + [layout] packages (what to emphasise, where to draw)
//	         ↓
//	    [pipeline] package (render every requested format)
//	         ↓
//	SVG/DOT/JSON/text/PDF/PNG output
//
// # Quick Start
//
// Build a tree and render it with a traversal highlighted:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bstviz/pkg/bst"
//	    "github.com/matzehuels/bstviz/pkg/pipeline"
//	)
//
//	tree, _ := bst.FromValues(50, 30, 70, 20, 40)
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), tree, pipeline.Options{
//	    Formats:   []string{"svg"},
//	    Traversal: "inorder",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("tree.svg", result.Artifacts["svg"], 0o644)
//
// # Layout Rule
//
// The root sits at the canvas origin. A node at (x, y) with spacing s puts
// its left child at (x-s, y+60) with spacing s/2.5 and its right child at
// (x+s, y+60) with spacing s/1.5. Spacing shrinks with depth but is never
// adjusted for collisions, so deep or unbalanced trees may overlap.
//
// # Sessions
//
// Interactive front ends (the terminal UI and the HTTP API) work on a
// [session.Session], which serializes access to one tree and keeps its
// view, current highlight and "[KIND] message" operation log.
//
// [bst]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/bst
// [layout]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/layout
// [highlight]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/highlight
// [view]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/session
// [session.Session]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/session#Session
// [config]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/buildinfo
package pkg
