package svgicon

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// RectLimits accumulates the extent of the tessellated points.
// The zero value is not ready to use: see NewRectLimits.
type RectLimits struct {
	minX, maxX, minY, maxY float64
}

// NewRectLimits returns an empty accumulator.
func NewRectLimits() *RectLimits {
	return &RectLimits{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
}

// ProcessPoint extends the limits to include `p`.
func (r *RectLimits) ProcessPoint(p f64.Vec2) {
	r.minX = math.Min(r.minX, p[0])
	r.maxX = math.Max(r.maxX, p[0])
	r.minY = math.Min(r.minY, p[1])
	r.maxY = math.Max(r.maxY, p[1])
}

// IsEmpty returns true if no point has been processed.
func (r *RectLimits) IsEmpty() bool { return r.minX > r.maxX }

// Bounds returns the extent of the processed points
// (the zero box when empty).
func (r *RectLimits) Bounds() Bounds {
	if r.IsEmpty() {
		return Bounds{}
	}
	return Bounds{X: r.minX, Y: r.minY, W: r.maxX - r.minX, H: r.maxY - r.minY}
}

// ContentSize returns the width and height of the processed points.
func (r *RectLimits) ContentSize() (w, h float64) {
	b := r.Bounds()
	return b.W, b.H
}

// Anchor returns the position of the origin relative to the
// content box, as (0.5 - cx/w, 0.5 - cy/h) where (cx, cy) is the center
// of the box. A degenerate axis, or an empty accumulator, gives 0.5.
func (r *RectLimits) Anchor() (x, y float64) {
	b := r.Bounds()
	x, y = 0.5, 0.5
	if b.W > 0 {
		x = 0.5 - (b.X+b.W/2)/b.W
	}
	if b.H > 0 {
		y = 0.5 - (b.Y+b.H/2)/b.H
	}
	return x, y
}
