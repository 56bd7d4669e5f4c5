package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/view"
)

func sampleLayout() layout.Layout {
	t, _ := bst.FromValues(50, 30, 70, 20, 40, 60, 80)
	return layout.ProjectTree(t, 160, 40, 200)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithHighlight(highlight.Found(40))))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("RenderSVG() output is not an SVG document")
	}
	if got := strings.Count(svg, "<circle"); got != 7 {
		t.Errorf("circle count = %d, want 7", got)
	}
	if got := strings.Count(svg, "<line"); got != 6 {
		t.Errorf("line count = %d, want 6", got)
	}
	if !strings.Contains(svg, `class="node found" id="node-40"`) {
		t.Error("node 40 should be marked found")
	}
	if !strings.Contains(svg, `fill="red"`) {
		t.Error("found node should be filled red")
	}
	if strings.Count(svg, `fill="#87CEEB"`) != 6 {
		t.Error("other nodes should use the default fill")
	}
	if !strings.Contains(svg, `r="20.0"`) {
		t.Error("default radius should be 20")
	}
}

func TestRenderSVGOrder(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))
	line := strings.Index(svg, "<line")
	circle := strings.Index(svg, "<circle")
	text := strings.Index(svg, "<text")
	if !(line < circle && circle < text) {
		t.Error("edges must be drawn before circles, and circles before labels")
	}
}

func TestRenderSVGTraversal(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithHighlight(highlight.Visited([]int{50, 30}))))
	if strings.Count(svg, `fill="yellow"`) != 2 {
		t.Error("traversal members should be filled yellow")
	}
}

func TestRenderSVGSizeAndView(t *testing.T) {
	v := view.View{OffsetX: 15, OffsetY: -5, Scale: 2}
	svg := string(RenderSVG(sampleLayout(), WithSize(800, 600), WithView(v), WithRadius(12)))

	if !strings.Contains(svg, `viewBox="0 0 800.0 600.0"`) {
		t.Error("fixed size should set the viewBox")
	}
	if !strings.Contains(svg, `translate(15.00 -5.00) scale(2.0000)`) {
		t.Error("view should be applied as a group transform")
	}
	if !strings.Contains(svg, `r="12.0"`) {
		t.Error("WithRadius should change the circle radius")
	}
}

func TestRenderSVGPalette(t *testing.T) {
	p := highlight.Palette{Node: "white"}
	svg := string(RenderSVG(sampleLayout(), WithPalette(p)))
	if !strings.Contains(svg, `fill="white"`) {
		t.Error("custom node colour missing")
	}
	if !strings.Contains(svg, `stroke="#000"`) {
		t.Error("unset palette fields should fall back to defaults")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(layout.Layout{}))
	if strings.Contains(svg, "<circle") {
		t.Error("empty layout should draw no nodes")
	}
}

func TestRenderJSON(t *testing.T) {
	l := sampleLayout()
	data, err := RenderJSON(l, highlight.Visited([]int{20, 30, 40}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if len(doc.Nodes) != 7 || len(doc.Edges) != 6 {
		t.Fatalf("document has %d nodes and %d edges", len(doc.Nodes), len(doc.Edges))
	}

	states := map[int]string{}
	for _, n := range doc.Nodes {
		states[n.Value] = n.State
		if n.Value == 40 && (n.Step == nil || *n.Step != 2) {
			t.Errorf("node 40 step = %v, want 2", n.Step)
		}
	}
	if states[30] != "visited" || states[50] != "default" {
		t.Errorf("states = %v", states)
	}
	if doc.Search != nil {
		t.Error("no search was highlighted")
	}
	if got := doc.Layout(); len(got.Nodes) != len(l.Nodes) || got.Nodes[0] != l.Nodes[0] {
		t.Error("Layout() should recover the projected points")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Layout{}, highlight.Found(3))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("empty layout should serialize edges as []: %s", data)
	}
	if !strings.Contains(string(data), `"search": 3`) {
		t.Errorf("search value missing: %s", data)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"nodes": [`},
		{"duplicate node", `{"nodes": [{"value": 1}, {"value": 1}], "edges": []}`},
		{"dangling edge", `{"nodes": [{"value": 1}], "edges": [{"from": 1, "to": 2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.data)); err == nil {
				t.Error("ParseJSON() should fail")
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleLayout(), highlight.None(), TextOptions{})
	lines := strings.Split(out, "\n")

	if len(lines) != 7 {
		t.Fatalf("line count = %d, want 7:\n%s", len(lines), out)
	}
	if strings.TrimSpace(lines[0]) != "50" {
		t.Errorf("first line = %q, want the root", lines[0])
	}
	if !strings.Contains(lines[1], "/") || !strings.Contains(lines[1], `\`) {
		t.Errorf("second line should hold both edges: %q", lines[1])
	}
	if strings.Index(lines[3], "30") >= strings.Index(lines[3], "70") {
		t.Errorf("30 should be left of 70: %q", lines[3])
	}
	for _, v := range []string{"20", "40", "60", "80"} {
		if !strings.Contains(lines[6], v) {
			t.Errorf("leaf row missing %s: %q", v, lines[6])
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncoloured output should not contain escape codes")
	}
}

func TestRenderTextViewport(t *testing.T) {
	v := view.Default()
	out := RenderText(sampleLayout(), highlight.None(), TextOptions{Width: 40, Height: 5, View: &v})
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds viewport: %q", line)
		}
	}
	if strings.Count(out, "\n") > 4 {
		t.Error("output exceeds viewport height")
	}
	if !strings.Contains(out, "50") {
		t.Errorf("root should be visible in the viewport:\n%s", out)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if RenderText(layout.Layout{}, highlight.None(), TextOptions{}) != "" {
		t.Error("empty layout should render as empty string")
	}
}
