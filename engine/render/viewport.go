package render

import "math"

// Viewport maps the playfield onto the window
type Viewport struct {
	Scale    float64 // window pixels per field pixel
	MinScale float64
	MaxScale float64
}

// NewViewport creates a viewport with the given scale clamped to [0.5, 3]
func NewViewport(scale float64) *Viewport {
	v := &Viewport{MinScale: 0.5, MaxScale: 3.0}
	v.SetScale(scale)
	return v
}

// SetScale sets the scale with clamping
func (v *Viewport) SetScale(s float64) {
	v.Scale = math.Max(v.MinScale, math.Min(v.MaxScale, s))
}

// WindowSize returns the window size for a field of w x h pixels
func (v *Viewport) WindowSize(w, h int) (int, int) {
	return int(math.Round(float64(w) * v.Scale)), int(math.Round(float64(h) * v.Scale))
}

// FitScale returns the largest scale at which the field fits inside the
// given screen area, never above the current scale
func (v *Viewport) FitScale(w, h, screenW, screenH int) float64 {
	if w <= 0 || h <= 0 || screenW <= 0 || screenH <= 0 {
		return v.Scale
	}
	fit := math.Min(float64(screenW)/float64(w), float64(screenH)/float64(h))
	return math.Max(v.MinScale, math.Min(v.Scale, fit))
}
