package svgicon

import (
	"math"

	"github.com/benoitkugler/svgreveal/svgpath"
	"golang.org/x/image/math/f64"
)

// Tessellate samples the outline of `sub` at regular arc length intervals.
// `threshold` is the number of samples per user unit (higher values
// give more accurate outlines) and must be strictly positive.
//
// Each sample is transformed by `transform` then reflected across the
// horizontal axis, so that the y axis points up. When `closeShape` is true,
// the outline is closed and the first sample is repeated at the end.
// Every sample extends `limits`, which may be nil.
//
// Degenerate outlines (with zero length) are reported with ok = false
// and a nil error.
func Tessellate(sub svgpath.Subpath, settings DrawSettings, transform Matrix2D,
	closeShape bool, threshold float64, limits *RectLimits,
) (de DrawElement, ok bool, err error) {
	if !validThreshold(threshold) {
		return DrawElement{}, false, ErrInvalidThreshold
	}
	if closeShape && !sub.Closed() {
		sub = append(sub[:len(sub):len(sub)], svgpath.Command{Letter: 'Z'})
	}

	contour := svgpath.NewContour(sub)
	length := contour.Length()
	if !(length > 0) || math.IsInf(length, 1) {
		return DrawElement{}, false, nil
	}

	stepCount := int(math.Floor(length * threshold))
	if stepCount < 1 {
		stepCount = 1
	}
	step := length / float64(stepCount)

	sample := func(d float64) f64.Vec2 {
		p := transform.Transform(contour.PointAt(d))
		p[1] = -p[1]
		if limits != nil {
			limits.ProcessPoint(p)
		}
		return p
	}

	points := make([]f64.Vec2, 0, stepCount+2)
	for i := 0; i <= stepCount; i++ {
		points = append(points, sample(float64(i)*step))
	}
	if closeShape {
		points = append(points, sample(0))
	}
	return DrawElement{Points: points, Settings: settings}, true, nil
}

func validThreshold(t float64) bool { return t > 0 && !math.IsInf(t, 1) }
