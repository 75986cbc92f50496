package svgdraw

import (
	"math"

	"github.com/benoitkugler/svgreveal/svgicon"
)

// The reveal has two halves: during [0, 0.5) the outline is stroked
// progressively with the fill color, then during [0.5, 1) the fill
// fades in while the stroke thins down to its authored width.

// Appearance returns the settings used to draw an element
// whose final settings are `base`, at the given progress in [0, 1].
func Appearance(base svgicon.DrawSettings, defaultLineWidth, progress float64) svgicon.DrawSettings {
	if progress >= 1 {
		return base
	}
	out := base
	out.StrokeColor = base.FillColor
	out.NeedStroke = true
	if progress < 0.5 {
		out.NeedFill = false
		out.LineWidth = defaultLineWidth
		return out
	}
	fade := math.Max(0, progress-0.5) * 2
	out.NeedFill = true
	out.FillColor.A = uint8(math.Round(float64(base.FillColor.A) * fade))
	out.LineWidth = math.Max(defaultLineWidth*(1-progress)*2, base.LineWidth)
	return out
}

// StrokedCount returns how many points of an outline of `n` points
// are stroked at the given progress: the whole outline is revealed
// at progress 0.5. At least the first point is always included.
func StrokedCount(n int, progress float64) int {
	if n <= 0 {
		return 0
	}
	limit := float64(n) * math.Min(1, 2*progress)
	if !(limit > 1) {
		return 1
	}
	if count := int(math.Ceil(limit)); count < n {
		return count
	}
	return n
}
