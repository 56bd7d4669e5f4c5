// Package pipeline turns a tree into rendered artifacts.
//
// This package implements the highlight → layout → render pipeline shared by
// the CLI, the TUI and the HTTP API. Centralizing it keeps every entry point
// drawing the same picture for the same tree.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Highlight: resolve the search hit or traversal order to emphasise
//  2. Layout: project the tree with the canvas origin and view
//  3. Render: generate output in various formats (SVG, JSON, DOT, text, PDF, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, tree, pipeline.Options{
//	    Formats:   []string{"svg", "json"},
//	    Traversal: "bfs",
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/render/sink"
	"github.com/matzehuels/bstviz/pkg/view"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1000.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 700.0

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatText     = "txt"
	FormatGraphviz = "graphviz"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatText:     true,
	FormatGraphviz: true,
	FormatPDF:      true,
	FormatPNG:      true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatGraphviz {
		return "gv.svg"
	}
	return format
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraphviz:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Canvas options
	Width     float64   `json:"width,omitempty"`
	Height    float64   `json:"height,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	RowHeight float64   `json:"row_height,omitempty"`
	View      view.View `json:"view"`
	// Canvas renders SVG onto the fixed Width x Height canvas with View
	// applied. Otherwise the SVG is cropped to the tree.
	Canvas bool `json:"canvas,omitempty"`

	// Highlight options; Search and Traversal are mutually exclusive.
	Search    *int   `json:"search,omitempty"`
	Traversal string `json:"traversal,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // depth in Graphviz labels

	// Runtime options (not serialized)
	Palette   highlight.Palette    `json:"-"`
	Highlight *highlight.Highlight `json:"-"` // overrides Search/Traversal
	Logger    *log.Logger          `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 || o.Radius < 0 || o.RowHeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas dimensions must not be negative")
	}
	if o.Search != nil && o.Traversal != "" {
		return errors.New(errors.ErrCodeInvalidInput, "search and traversal cannot be combined")
	}
	if o.Traversal != "" {
		kind, err := bst.ParseTraversal(o.Traversal)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTraversal, err, "invalid traversal %q", o.Traversal)
		}
		o.Traversal = string(kind)
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero values with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = sink.DefaultRadius
	}
	if o.RowHeight == 0 {
		o.RowHeight = layout.RowHeight
	}
	if o.View.Scale == 0 {
		o.View.Scale = 1
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Palette = o.Palette.Merge(highlight.DefaultPalette())
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
