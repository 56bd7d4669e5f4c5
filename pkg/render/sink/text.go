package sink

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bstviz/pkg/highlight"
	"github.com/matzehuels/bstviz/pkg/layout"
	"github.com/matzehuels/bstviz/pkg/view"
)

// Layout units covered by one character cell. Terminal cells are roughly
// twice as tall as they are wide.
const (
	CellWidth  = 8.0
	CellHeight = 20.0
)

// TextOptions configures RenderText.
type TextOptions struct {
	// Width and Height bound the grid in cells. With a View set they define
	// the viewport; otherwise zero means "as large as the tree".
	Width, Height int

	// View, when non-nil, maps layout space to the viewport the same way the
	// SVG canvas does. Nil crops the grid to the tree.
	View *view.View

	// Color enables lipgloss styling per highlight state.
	Color bool
}

var (
	textEdgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textNodeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	textVisitedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	textFoundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Underline(true)
)

// cellKind distinguishes edge glyphs from node labels in the grid.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellEdge
	cellNode
)

type cell struct {
	r     rune
	kind  cellKind
	state highlight.State
}

type grid struct {
	rows, cols int
	cells      [][]cell
}

func newGrid(rows, cols int) *grid {
	g := &grid{rows: rows, cols: cols, cells: make([][]cell, rows)}
	for i := range g.cells {
		g.cells[i] = make([]cell, cols)
	}
	return g
}

func (g *grid) set(row, col int, c cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = c
}

// RenderText draws l as lines of text. Edges use '/', '\' and '|'; nodes
// are their decimal labels centred on the node position.
func RenderText(l layout.Layout, h highlight.Highlight, opts TextOptions) string {
	if len(l.Nodes) == 0 {
		return ""
	}

	toCell, rows, cols := textProjection(l, opts)
	g := newGrid(rows, cols)

	for _, e := range l.Edges {
		c1, r1 := toCell(e.X1, e.Y1)
		c2, r2 := toCell(e.X2, e.Y2)
		drawEdge(g, c1, r1, c2, r2)
	}
	for _, p := range l.Nodes {
		c, r := toCell(p.X, p.Y)
		label := strconv.Itoa(p.Value)
		start := int(math.Round(c)) - len(label)/2
		row := int(math.Round(r))
		state := h.Classify(p.Value)
		for i, ch := range label {
			g.set(row, start+i, cell{r: ch, kind: cellNode, state: state})
		}
	}

	return g.render(opts.Color)
}

// textProjection returns the layout-to-cell mapping and the grid size.
func textProjection(l layout.Layout, opts TextOptions) (func(x, y float64) (float64, float64), int, int) {
	if opts.View != nil {
		v := *opts.View
		rows, cols := max(opts.Height, 1), max(opts.Width, 1)
		return func(x, y float64) (float64, float64) {
			sx, sy := v.Apply(x, y)
			return sx / CellWidth, sy / CellHeight
		}, rows, cols
	}

	b := l.Bounds()
	widest := 1
	for _, p := range l.Nodes {
		widest = max(widest, len(strconv.Itoa(p.Value)))
	}
	pad := float64(widest)
	cols := int(math.Ceil(b.Width()/CellWidth+2*pad)) + 1
	rows := int(math.Round(b.Height()/CellHeight)) + 1
	if opts.Width > 0 {
		cols = min(cols, opts.Width)
	}
	if opts.Height > 0 {
		rows = min(rows, opts.Height)
	}
	return func(x, y float64) (float64, float64) {
		return (x-b.MinX)/CellWidth + pad, (y - b.MinY) / CellHeight
	}, rows, cols
}

func drawEdge(g *grid, c1, r1, c2, r2 float64) {
	top, bottom := int(math.Round(r1)), int(math.Round(r2))
	if bottom-top < 2 {
		return
	}
	glyph := '|'
	switch {
	case c2 < c1:
		glyph = '/'
	case c2 > c1:
		glyph = '\\'
	}
	for row := top + 1; row < bottom; row++ {
		t := (float64(row) - r1) / (r2 - r1)
		col := int(math.Round(c1 + t*(c2-c1)))
		g.set(row, col, cell{r: glyph, kind: cellEdge})
	}
}

func (g *grid) render(color bool) string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		var b strings.Builder
		for j := 0; j < len(row); {
			k := j
			for k < len(row) && sameStyle(row[j], row[k]) {
				k++
			}
			b.WriteString(styleRun(row[j:k], color))
			j = k
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	// Drop trailing blank lines.
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

func sameStyle(a, b cell) bool {
	if a.kind != b.kind {
		return false
	}
	return a.kind != cellNode || a.state == b.state
}

func styleRun(run []cell, color bool) string {
	var b strings.Builder
	for _, c := range run {
		if c.kind == cellEmpty {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.r)
		}
	}
	s := b.String()
	if !color || run[0].kind == cellEmpty {
		return s
	}
	if run[0].kind == cellEdge {
		return textEdgeStyle.Render(s)
	}
	switch run[0].state {
	case highlight.StateFound:
		return textFoundStyle.Render(s)
	case highlight.StateVisited:
		return textVisitedStyle.Render(s)
	default:
		return textNodeStyle.Render(s)
	}
}
