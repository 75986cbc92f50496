package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgreveal/svgicon"
	"golang.org/x/image/math/f64"
)

// Viewport maps artwork coordinates (y axis pointing up)
// to device coordinates (y axis pointing down).
type Viewport struct {
	Scale      float64
	OffX, OffY float64
}

// Fit returns the viewport centering `content` in a w x h device area,
// scaled as large as possible while keeping `margin` on each side.
// Degenerate contents are not scaled.
func Fit(content svgicon.Bounds, w, h, margin float64) Viewport {
	availW, availH := w-2*margin, h-2*margin
	scale := math.Inf(1)
	if content.W > 0 {
		scale = availW / content.W
	}
	if content.H > 0 {
		scale = math.Min(scale, availH/content.H)
	}
	if math.IsInf(scale, 1) || !(scale > 0) {
		scale = 1
	}
	return Viewport{
		Scale: scale,
		OffX:  (w-content.W*scale)/2 - content.X*scale,
		OffY:  (h-content.H*scale)/2 + (content.Y+content.H)*scale,
	}
}

// Project returns the device coordinates of `p`.
func (v Viewport) Project(p f64.Vec2) (x, y float64) {
	return v.OffX + p[0]*v.Scale, v.OffY - p[1]*v.Scale
}
