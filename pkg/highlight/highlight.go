// Package highlight classifies tree nodes for rendering.
//
// The classification mirrors the visualizer's rule: the node found by the
// last search is drawn in one state, members of the last traversal result
// in another, and everything else in the default state. A search match
// takes precedence over traversal membership.
package highlight

// State is the visual class of a node.
type State int

const (
	StateDefault State = iota
	StateVisited
	StateFound
)

// String returns the state name used in JSON and CSS classes.
func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateVisited:
		return "visited"
	default:
		return "default"
	}
}

// Highlight is the caller-owned highlight selection.
type Highlight struct {
	search    *int
	traversal map[int]int // value -> position in the traversal
	order     []int
}

// None returns an empty highlight.
func None() Highlight { return Highlight{} }

// Found highlights the node holding v.
func Found(v int) Highlight {
	return Highlight{search: &v}
}

// Visited highlights every value in order, remembering its position.
func Visited(order []int) Highlight {
	h := Highlight{
		traversal: make(map[int]int, len(order)),
		order:     append([]int(nil), order...),
	}
	for i, v := range order {
		if _, ok := h.traversal[v]; !ok {
			h.traversal[v] = i
		}
	}
	return h
}

// Classify returns the state for value.
func (h Highlight) Classify(value int) State {
	if h.search != nil && *h.search == value {
		return StateFound
	}
	if _, ok := h.traversal[value]; ok {
		return StateVisited
	}
	return StateDefault
}

// Search returns the highlighted search value, if any.
func (h Highlight) Search() (int, bool) {
	if h.search == nil {
		return 0, false
	}
	return *h.search, true
}

// Order returns the traversal sequence, if any.
func (h Highlight) Order() []int {
	return h.order
}

// Step returns the position of value in the highlighted traversal.
func (h Highlight) Step(value int) (int, bool) {
	i, ok := h.traversal[value]
	return i, ok
}

// IsEmpty reports whether nothing is highlighted.
func (h Highlight) IsEmpty() bool {
	return h.search == nil && len(h.order) == 0
}
