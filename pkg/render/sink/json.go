package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
)

// Document is the JSON form of a highlighted layout.
type Document struct {
	Nodes     []Node           `json:"nodes"`
	Edges     []layout.Segment `json:"edges"`
	Bounds    layout.Rect      `json:"bounds"`
	Search    *int             `json:"search,omitempty"`
	Traversal []int            `json:"traversal,omitempty"`
}

// Node is a positioned node with its highlight state.
type Node struct {
	Value int     `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Depth int     `json:"depth"`
	State string  `json:"state"`
	// Step is the node's position in the highlighted traversal.
	Step *int `json:"step,omitempty"`
}

// NewDocument combines a layout with a highlight.
func NewDocument(l layout.Layout, h highlight.Highlight) Document {
	doc := Document{
		Nodes:  make([]Node, len(l.Nodes)),
		Edges:  l.Edges,
		Bounds: l.Bounds(),
	}
	if doc.Edges == nil {
		doc.Edges = []layout.Segment{}
	}
	for i, p := range l.Nodes {
		n := Node{Value: p.Value, X: p.X, Y: p.Y, Depth: p.Depth, State: h.Classify(p.Value).String()}
		if step, ok := h.Step(p.Value); ok {
			n.Step = &step
		}
		doc.Nodes[i] = n
	}
	if v, ok := h.Search(); ok {
		doc.Search = &v
	}
	doc.Traversal = h.Order()
	return doc
}

// Layout strips the highlight information.
func (d Document) Layout() layout.Layout {
	l := layout.Layout{
		Nodes: make([]layout.Point, len(d.Nodes)),
		Edges: d.Edges,
	}
	for i, n := range d.Nodes {
		l.Nodes[i] = layout.Point{Value: n.Value, X: n.X, Y: n.Y, Depth: n.Depth}
	}
	return l
}

// RenderJSON serializes l and h as pretty-printed JSON.
func RenderJSON(l layout.Layout, h highlight.Highlight) ([]byte, error) {
	return json.MarshalIndent(NewDocument(l, h), "", "  ")
}

// ParseJSON reads a document written by RenderJSON. Every edge must connect
// two nodes of the document.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	seen := make(map[int]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.Value] {
			return Document{}, fmt.Errorf("duplicate node %d", n.Value)
		}
		seen[n.Value] = true
	}
	for _, e := range doc.Edges {
		if !seen[e.From] || !seen[e.To] {
			return Document{}, fmt.Errorf("edge %d->%d references unknown node", e.From, e.To)
		}
	}
	return doc, nil
}
