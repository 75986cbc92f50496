package svgicon

import (
	"image/color"

	"golang.org/x/image/math/f64"
)

// DrawSettings holds the resolved style of an element.
// Use NewDrawSettings so that the flags match the colors.
type DrawSettings struct {
	FillColor, StrokeColor color.NRGBA
	LineWidth              float64

	NeedFill, NeedStroke bool // a color with zero alpha is not painted
}

// NewDrawSettings derives the fill and stroke flags from the alpha
// of the given colors.
func NewDrawSettings(fill, stroke color.NRGBA, lineWidth float64) DrawSettings {
	return DrawSettings{
		FillColor:   fill,
		StrokeColor: stroke,
		LineWidth:   lineWidth,
		NeedFill:    fill.A > 0,
		NeedStroke:  stroke.A > 0,
	}
}

// DefaultSettings are used for absent or invalid style properties:
// black fill and stroke, with a width of 1.
var DefaultSettings = NewDrawSettings(color.NRGBA{A: 0xff}, color.NRGBA{A: 0xff}, 1)

// DrawElement is a tessellated outline, ready to be
// stroked or filled.
// Points are expressed in artwork coordinates, with the y axis pointing up.
type DrawElement struct {
	Points   []f64.Vec2
	Settings DrawSettings
}

// PointCount returns the number of points of the outline.
func (de DrawElement) PointCount() int { return len(de.Points) }
