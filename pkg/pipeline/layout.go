package pipeline

import (
	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
)

// =============================================================================
// Highlight and Layout
// =============================================================================

// BuildHighlight resolves the highlight requested by opts.
//
// A search for an absent value highlights nothing, matching the interactive
// visualizer, which clears the search colour on a miss.
func BuildHighlight(t *bst.Tree, opts Options) (highlight.Highlight, error) {
	if opts.Highlight != nil {
		return *opts.Highlight, nil
	}
	if opts.Search != nil {
		if t.Contains(*opts.Search) {
			return highlight.Found(*opts.Search), nil
		}
		return highlight.None(), nil
	}
	if opts.Traversal != "" {
		kind, err := bst.ParseTraversal(opts.Traversal)
		if err != nil {
			return highlight.None(), err
		}
		return highlight.Visited(t.Traverse(kind)), nil
	}
	return highlight.None(), nil
}

// ComputeLayout projects t from the canvas origin for opts.Width and opts.View.
func ComputeLayout(t *bst.Tree, opts Options) layout.Layout {
	x, y, spacing := layout.Origin(opts.Width, opts.View)
	return layout.ProjectTree(t, x, y, spacing, layout.WithRowHeight(opts.RowHeight))
}
