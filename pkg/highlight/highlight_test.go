package highlight

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		h     Highlight
		value int
		want  State
	}{
		{"none", None(), 5, StateDefault},
		{"search hit", Found(5), 5, StateFound},
		{"search miss", Found(5), 6, StateDefault},
		{"traversal member", Visited([]int{1, 5, 9}), 9, StateVisited},
		{"traversal non-member", Visited([]int{1, 5, 9}), 4, StateDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Classify(tt.value); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSearchTakesPrecedence(t *testing.T) {
	h := Visited([]int{3, 4})
	v := 3
	h.search = &v
	if got := h.Classify(3); got != StateFound {
		t.Errorf("Classify(3) = %v, want found", got)
	}
}

func TestVisitedCopiesOrder(t *testing.T) {
	order := []int{2, 1, 3}
	h := Visited(order)
	order[0] = 99

	if h.Order()[0] != 2 {
		t.Error("Visited should copy its input")
	}
	if i, ok := h.Step(3); !ok || i != 2 {
		t.Errorf("Step(3) = (%d, %v), want (2, true)", i, ok)
	}
}

func TestIsEmpty(t *testing.T) {
	if !None().IsEmpty() {
		t.Error("None().IsEmpty() = false")
	}
	if Found(0).IsEmpty() {
		t.Error("Found(0).IsEmpty() = true")
	}
	if v, ok := Found(0).Search(); !ok || v != 0 {
		t.Errorf("Search() = (%d, %v), want (0, true)", v, ok)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Fill(StateFound) != "red" || p.Fill(StateVisited) != "yellow" || p.Fill(StateDefault) != "#87CEEB" {
		t.Errorf("DefaultPalette fills = %+v", p)
	}

	merged := Palette{Found: "crimson"}.Merge(p)
	if merged.Found != "crimson" || merged.Node != "#87CEEB" {
		t.Errorf("Merge() = %+v", merged)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{StateDefault: "default", StateVisited: "visited", StateFound: "found"} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
