// Given a compiled SVG artwork, implements how to
// reveal it progressively on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/svgreveal/svgicon"
	"golang.org/x/image/math/f64"
)

// Driver knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformations are already applied to the points
// before sending them to the Driver, whose y axis points up.
type Driver interface {
	// Clear must reset the drawing surface, before a new frame.
	Clear()

	// Stroke draws the polyline through `points`.
	Stroke(points []f64.Vec2, c color.NRGBA, width float64)

	// Fill paints the polygon enclosed by `points`.
	Fill(points []f64.Vec2, c color.NRGBA)

	// Flush is called once at the end of every frame.
	Flush() error
}

// Drawable is one element of a frame, with its style
// resolved for the current progress.
type Drawable struct {
	Points  []f64.Vec2 // the full outline, used by the fill
	Stroked []f64.Vec2 // the prefix of Points revealed so far
	svgicon.DrawSettings
}

// BuildFrame returns the drawables of `artwork` at the given progress,
// skipping empty elements. The point slices are shared with the artwork.
func BuildFrame(artwork *svgicon.Artwork, defaultLineWidth, progress float64) []Drawable {
	if artwork == nil {
		return nil
	}
	out := make([]Drawable, 0, len(artwork.Elements))
	for _, el := range artwork.Elements {
		n := el.PointCount()
		if n == 0 {
			continue
		}
		out = append(out, Drawable{
			Points:       el.Points,
			Stroked:      el.Points[:StrokedCount(n, progress)],
			DrawSettings: Appearance(el.Settings, defaultLineWidth, progress),
		})
	}
	return out
}

// DrawFrame issues the draw calls of `frame` on `d`,
// stroke then fill for every drawable, and flushes.
func DrawFrame(d Driver, frame []Drawable) error {
	d.Clear()
	for _, dr := range frame {
		if dr.NeedStroke {
			d.Stroke(dr.Stroked, dr.StrokeColor, dr.LineWidth)
		}
		if dr.NeedFill {
			d.Fill(dr.Points, dr.FillColor)
		}
	}
	return d.Flush()
}
