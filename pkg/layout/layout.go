package layout

import (
	"math"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/view"
)

// Geometry constants.
const (
	RowHeight   = 60.0
	LeftShrink  = 2.5
	RightShrink = 1.5

	// OriginY is the vertical position of the root in the default origin.
	OriginY = 40.0
)

// Point is a positioned node.
type Point struct {
	Value int     `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Depth int     `json:"depth"`
}

// Segment is a parent-child edge.
type Segment struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Layout is the projection of a whole tree.
type Layout struct {
	Nodes []Point   `json:"nodes"`
	Edges []Segment `json:"edges"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Pad grows the rectangle by d on every side.
func (r Rect) Pad(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Option tweaks a projection.
type Option func(*projector)

// WithRowHeight overrides the vertical step between levels. Non-positive
// values are ignored.
func WithRowHeight(h float64) Option {
	return func(p *projector) {
		if h > 0 {
			p.rowHeight = h
		}
	}
}

type projector struct {
	rowHeight float64
	out       Layout
}

// Project computes positions for every node under root, placing root at
// (x, y). A nil root yields an empty layout.
func Project(root *bst.Node, x, y, spacing float64, opts ...Option) Layout {
	p := projector{rowHeight: RowHeight}
	for _, opt := range opts {
		opt(&p)
	}
	p.project(root, x, y, spacing, 0)
	return p.out
}

// ProjectTree is Project applied to t's root.
func ProjectTree(t *bst.Tree, x, y, spacing float64, opts ...Option) Layout {
	return Project(t.Root(), x, y, spacing, opts...)
}

func (p *projector) project(n *bst.Node, x, y, spacing float64, depth int) {
	if n == nil {
		return
	}
	p.out.Nodes = append(p.out.Nodes, Point{Value: n.Value(), X: x, Y: y, Depth: depth})

	if l := n.Left(); l != nil {
		lx, ly := x-spacing, y+p.rowHeight
		p.out.Edges = append(p.out.Edges, Segment{From: n.Value(), To: l.Value(), X1: x, Y1: y, X2: lx, Y2: ly})
		p.project(l, lx, ly, spacing/LeftShrink, depth+1)
	}
	if r := n.Right(); r != nil {
		rx, ry := x+spacing, y+p.rowHeight
		p.out.Edges = append(p.out.Edges, Segment{From: n.Value(), To: r.Value(), X1: x, Y1: y, X2: rx, Y2: ry})
		p.project(r, rx, ry, spacing/RightShrink, depth+1)
	}
}

// Origin returns the default root position and initial spacing for a
// canvas of the given width, compensating for the view so the tree is
// laid out in layout space: x = width/5/scale - offsetX/scale, y = 40,
// spacing = width/4/scale.
func Origin(width float64, v view.View) (x, y, spacing float64) {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	return width/5/scale - v.OffsetX/scale, OriginY, width / 4 / scale
}

// Point returns the position of value, if it was projected.
func (l Layout) Point(value int) (Point, bool) {
	for _, p := range l.Nodes {
		if p.Value == value {
			return p, true
		}
	}
	return Point{}, false
}

// Bounds returns the box enclosing every node centre. An empty layout
// returns the zero Rect.
func (l Layout) Bounds() Rect {
	if len(l.Nodes) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range l.Nodes {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}

