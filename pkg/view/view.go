// Package view tracks the pan and zoom state of a tree diagram.
//
// Coordinates produced by the layout projector live in layout space. A
// [View] maps them to screen space by scaling and then translating:
//
//	screenX = x*Scale + OffsetX
//	screenY = y*Scale + OffsetY
//
// Zooming is anchored at a screen point so the content under the cursor
// stays in place, and the scale is clamped to [MinScale, MaxScale].
package view

// Zoom limits and wheel sensitivity.
const (
	MinScale      = 0.1
	MaxScale      = 5.0
	ZoomIntensity = 0.0015
)

// View is a pan offset plus a uniform scale.
type View struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Scale   float64 `json:"scale"`
}

// Default returns the identity view.
func Default() View {
	return View{Scale: 1}
}

// Reset restores the identity view.
func (v *View) Reset() {
	*v = Default()
}

// Pan moves the view by (dx, dy) screen units.
func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt zooms around the screen point (mx, my). delta follows wheel
// conventions: negative zooms in, positive zooms out.
func (v *View) ZoomAt(mx, my, delta float64) {
	v.normalize()
	factor := 1 + (-delta)*ZoomIntensity
	v.OffsetX = mx - factor*(mx-v.OffsetX)
	v.OffsetY = my - factor*(my-v.OffsetY)
	v.Scale = clamp(v.Scale*factor, MinScale, MaxScale)
}

// Apply maps a layout-space point to screen space.
func (v View) Apply(x, y float64) (float64, float64) {
	v.normalize()
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}

// Invert maps a screen-space point back to layout space.
func (v View) Invert(x, y float64) (float64, float64) {
	v.normalize()
	return (x - v.OffsetX) / v.Scale, (y - v.OffsetY) / v.Scale
}

// IsDefault reports whether v is the identity view.
func (v View) IsDefault() bool {
	return v == Default()
}

// normalize treats a zero scale (the zero value) as 1.
func (v *View) normalize() {
	if v.Scale == 0 {
		v.Scale = 1
	}
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}
