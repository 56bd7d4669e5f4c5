package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/highlight"
)

// DefaultArtifactTTL is how long cached artifacts stay valid.
const DefaultArtifactTTL = 10 * time.Minute

// artifactKeyOpts holds the option fields that change rendered bytes.
type artifactKeyOpts struct {
	Width, Height, Radius, RowHeight float64
	View                             [3]float64
	Canvas, Detailed                 bool
	Palette                          highlight.Palette
	Search                           *int
	Order                            []int
}

// artifactKey identifies one rendered format. A BST is determined by its
// pre-order sequence, so that sequence stands in for the tree.
func artifactKey(t *bst.Tree, h highlight.Highlight, opts Options, format string) string {
	k := artifactKeyOpts{
		Width:     opts.Width,
		Height:    opts.Height,
		Radius:    opts.Radius,
		RowHeight: opts.RowHeight,
		View:      [3]float64{opts.View.OffsetX, opts.View.OffsetY, opts.View.Scale},
		Canvas:    opts.Canvas,
		Detailed:  opts.Detailed,
		Palette:   opts.Palette,
		Order:     h.Order(),
	}
	if v, ok := h.Search(); ok {
		k.Search = &v
	}
	return cache.Key("artifact", t.PreOrder(), format, k)
}

// cachedArtifacts returns every requested format from c, or nil when any
// of them is missing.
func cachedArtifacts(ctx context.Context, c cache.Cache, keys map[string]string) map[string][]byte {
	out := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, ok, err := c.Get(ctx, key)
		if err != nil || !ok {
			return nil
		}
		out[format] = data
	}
	return out
}

// storeArtifacts writes artifacts to c. Failures only cost a re-render.
func storeArtifacts(ctx context.Context, c cache.Cache, keys map[string]string, artifacts map[string][]byte, ttl time.Duration) error {
	for format, data := range artifacts {
		if err := c.Set(ctx, keys[format], data, ttl); err != nil {
			return err
		}
	}
	return nil
}
