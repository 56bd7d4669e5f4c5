package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
)

func sampleLayout() layout.Layout {
	t, _ := bst.FromValues(50, 30, 70)
	return layout.ProjectTree(t, 144, 72, 72)
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleLayout(), highlight.None(), Options{})

	if !strings.Contains(dot, "digraph BST") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, id := range []string{`"50"`, `"30"`, `"70"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if !strings.Contains(dot, `"50" -> "30"`) || !strings.Contains(dot, `"50" -> "70"`) {
		t.Error("ToDOT() output missing edges")
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(sampleLayout(), highlight.None(), Options{})

	// root at (144, 72) -> (2in, -1in); left child at (72, 132).
	if !strings.Contains(dot, `pos="2.000,-1.000!"`) {
		t.Errorf("root position missing:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="1.000,-1.833!"`) {
		t.Errorf("left child position missing:\n%s", dot)
	}
}

func TestToDOT_Highlight(t *testing.T) {
	dot := ToDOT(sampleLayout(), highlight.Found(70), Options{})
	if !strings.Contains(dot, `fillcolor="red"`) {
		t.Error("found node should be filled red")
	}

	dot = ToDOT(sampleLayout(), highlight.Visited([]int{50, 30}), Options{Palette: highlight.Palette{Visited: "gold"}})
	if strings.Count(dot, `fillcolor="gold"`) != 2 {
		t.Error("visited nodes should use the palette colour")
	}
}

func TestFmtLabel(t *testing.T) {
	p := layout.Point{Value: 42, Depth: 3}
	if got := fmtLabel(p, false); got != "42" {
		t.Errorf("fmtLabel() simple = %q, want %q", got, "42")
	}
	if got := fmtLabel(p, true); got != "42\ndepth 3" {
		t.Errorf("fmtLabel() detailed = %q", got)
	}
}

func TestFmtAttrs(t *testing.T) {
	attrs := fmtAttrs(layout.Point{Value: 1, X: 36, Y: 36}, "1", "white")
	if len(attrs) != 3 {
		t.Fatalf("fmtAttrs() returned %d attrs, want 3", len(attrs))
	}
	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, `fillcolor="white"`) || !strings.Contains(joined, `pos="0.500,-0.500!"`) {
		t.Errorf("fmtAttrs() = %v", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleLayout(), highlight.None(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
