package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/observability"
	"github.com/matzehuels/bstviz/pkg/render"
	"github.com/matzehuels/bstviz/pkg/render/nodelink"
	"github.com/matzehuels/bstviz/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
// Options are validated first; render hooks see every call.
func Render(ctx context.Context, l layout.Layout, h highlight.Highlight, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats, len(l.Nodes))
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	r := renderer{layout: l, highlight: h, opts: opts}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.render(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderer memoizes the intermediate SVG and DOT shared between formats.
type renderer struct {
	layout    layout.Layout
	highlight highlight.Highlight
	opts      Options

	svg []byte
	dot string
}

func (r *renderer) render(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.svgDoc(), nil
	case FormatPDF:
		return render.ToPDF(r.svgDoc())
	case FormatPNG:
		return render.ToPNG(r.svgDoc(), DefaultPNGScale)
	case FormatJSON:
		return sink.RenderJSON(r.layout, r.highlight)
	case FormatDOT:
		return []byte(r.dotDoc()), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(r.dotDoc())
	case FormatText:
		return []byte(sink.RenderText(r.layout, r.highlight, sink.TextOptions{})), nil
	default:
		return nil, ValidateFormat(format)
	}
}

func (r *renderer) svgDoc() []byte {
	if r.svg == nil {
		r.svg = sink.RenderSVG(r.layout, buildSVGOptions(r.highlight, r.opts)...)
	}
	return r.svg
}

func (r *renderer) dotDoc() string {
	if r.dot == "" {
		r.dot = nodelink.ToDOT(r.layout, r.highlight, nodelink.Options{
			Detailed: r.opts.Detailed,
			Palette:  r.opts.Palette,
		})
	}
	return r.dot
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(h highlight.Highlight, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithHighlight(h),
		sink.WithPalette(opts.Palette),
		sink.WithRadius(opts.Radius),
		sink.WithView(opts.View),
	}
	if opts.Canvas {
		svgOpts = append(svgOpts, sink.WithSize(opts.Width, opts.Height))
	}
	return svgOpts
}
