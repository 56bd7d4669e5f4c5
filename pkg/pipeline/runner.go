package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
)

// Runner encapsulates pipeline execution.
//
// The Runner holds no per-run state. With a Cache set, rendered artifacts
// are reused for identical trees and options. Multiple goroutines can safely
// use the same Runner with different options, as long as each tree is
// guarded by its owner.
type Runner struct {
	Logger *log.Logger

	// Cache, if non-nil, stores artifacts for CacheTTL (DefaultArtifactTTL
	// when zero).
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Highlight is the resolved highlight selection.
	Highlight highlight.Highlight

	// Layout contains the projected node positions and edges.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Height     int
	LayoutTime time.Duration
	RenderTime time.Duration
	Cached     bool
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete highlight → layout → render pipeline for t.
func (r *Runner) Execute(ctx context.Context, t *bst.Tree, opts Options) (*Result, error) {
	if t == nil {
		t = bst.New()
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.NodeCount = t.Len()
	result.Stats.Height = t.Height()

	h, err := BuildHighlight(t, opts)
	if err != nil {
		return nil, fmt.Errorf("highlight: %w", err)
	}
	result.Highlight = h

	layoutStart := time.Now()
	result.Layout = ComputeLayout(t, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Debug("computed layout",
		"nodes", len(result.Layout.Nodes),
		"height", result.Stats.Height,
		"duration", result.Stats.LayoutTime)

	var keys map[string]string
	if r.Cache != nil {
		keys = make(map[string]string, len(opts.Formats))
		for _, f := range opts.Formats {
			keys[f] = artifactKey(t, h, opts, f)
		}
		if artifacts := cachedArtifacts(ctx, r.Cache, keys); artifacts != nil {
			result.Artifacts = artifacts
			result.Stats.Cached = true
			r.Logger.Debug("artifact cache hit", "formats", opts.Formats)
			return result, nil
		}
	}

	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Layout, h, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if r.Cache != nil {
		ttl := r.CacheTTL
		if ttl <= 0 {
			ttl = DefaultArtifactTTL
		}
		if err := storeArtifacts(ctx, r.Cache, keys, artifacts, ttl); err != nil {
			r.Logger.Warn("artifact cache store failed", "error", err)
		}
	}

	return result, nil
}
