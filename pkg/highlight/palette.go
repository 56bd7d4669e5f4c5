package highlight

// Palette maps states to colours. Colours are any CSS/Graphviz colour
// string.
type Palette struct {
	Found   string `toml:"search" json:"found"`
	Visited string `toml:"traversal" json:"visited"`
	Node    string `toml:"node" json:"node"`
	Stroke  string `toml:"edge" json:"stroke"`
	Text    string `toml:"text" json:"text"`
}

// DefaultPalette is the classic look: red search hit, yellow traversal,
// sky blue nodes with black outlines.
func DefaultPalette() Palette {
	return Palette{
		Found:   "red",
		Visited: "yellow",
		Node:    "#87CEEB",
		Stroke:  "#000",
		Text:    "#000",
	}
}

// Fill returns the fill colour for s.
func (p Palette) Fill(s State) string {
	switch s {
	case StateFound:
		return p.Found
	case StateVisited:
		return p.Visited
	default:
		return p.Node
	}
}

// Merge returns p with empty fields taken from fallback.
func (p Palette) Merge(fallback Palette) Palette {
	if p.Found == "" {
		p.Found = fallback.Found
	}
	if p.Visited == "" {
		p.Visited = fallback.Visited
	}
	if p.Node == "" {
		p.Node = fallback.Node
	}
	if p.Stroke == "" {
		p.Stroke = fallback.Stroke
	}
	if p.Text == "" {
		p.Text = fallback.Text
	}
	return p
}
