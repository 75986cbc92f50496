package svgpath

import (
	"math"
	"sort"

	"golang.org/x/image/math/f64"
)

// FlattenTolerance is the maximum distance between a curve
// and the polyline approximating it, in user units.
var FlattenTolerance = 0.01

// maximum subdivision depth when flattening, which also
// protects against non finite control points
const maxFlattenDepth = 16

// Contour is the flattened outline of a subpath, which
// may be measured and sampled by arc length.
type Contour struct {
	points  []f64.Vec2
	lengths []float64 // cumulative length at each point, starting at 0
}

// NewContour flattens the commands of `sub`, using their absolute arguments.
// Several moveTo are accepted: they start a new run with no length in between.
func NewContour(sub Subpath) *Contour {
	var b contourBuilder
	for _, cmd := range sub {
		b.add(cmd)
	}
	return &b.out
}

// Length returns the total length of the outline.
func (c *Contour) Length() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return c.lengths[len(c.lengths)-1]
}

// Points returns the vertices of the flattened outline.
func (c *Contour) Points() []f64.Vec2 { return c.points }

// PointAt returns the point at distance `d` along the outline,
// with `d` clamped to [0, Length()].
func (c *Contour) PointAt(d float64) f64.Vec2 {
	if len(c.points) == 0 {
		return f64.Vec2{}
	}
	if !(d > 0) { // also catches NaN
		return c.points[0]
	}
	if d >= c.Length() {
		return c.points[len(c.points)-1]
	}
	i := sort.SearchFloat64s(c.lengths, d) // lengths[i] >= d, i >= 1
	p0, p1 := c.points[i-1], c.points[i]
	span := c.lengths[i] - c.lengths[i-1]
	if span == 0 {
		return p1
	}
	return lerp(p0, p1, (d-c.lengths[i-1])/span)
}

func (c *Contour) moveTo(p f64.Vec2) {
	var l float64
	if n := len(c.lengths); n != 0 {
		l = c.lengths[n-1]
	}
	c.points = append(c.points, p)
	c.lengths = append(c.lengths, l)
}

func (c *Contour) lineTo(p f64.Vec2) {
	if len(c.points) == 0 {
		c.moveTo(p)
		return
	}
	n := len(c.points)
	c.points = append(c.points, p)
	c.lengths = append(c.lengths, c.lengths[n-1]+distance(c.points[n-1], p))
}

// contourBuilder converts commands to segments, resolving
// the implicit control points of S and T.
type contourBuilder struct {
	out            Contour
	current, start f64.Vec2

	// control points reflected by S or T, valid only
	// if the previous command was C/S (resp. Q/T)
	lastCubic, lastQuad        f64.Vec2
	afterCubic, afterQuadratic bool
}

func (b *contourBuilder) add(cmd Command) {
	kind := cmd.Kind()
	a := cmd.Abs
	point := func(i int) f64.Vec2 { return f64.Vec2{a[i], a[i+1]} }
	wasCubic, wasQuad := b.afterCubic, b.afterQuadratic
	b.afterCubic, b.afterQuadratic = false, false

	switch kind {
	case 'M':
		b.current, b.start = point(0), point(0)
		b.out.moveTo(b.current)
	case 'Z':
		b.line(b.start)
	case 'L':
		b.line(point(0))
	case 'H':
		b.line(f64.Vec2{a[0], b.current[1]})
	case 'V':
		b.line(f64.Vec2{b.current[0], a[0]})
	case 'C':
		b.cubic(point(0), point(2), point(4))
	case 'S':
		c1 := b.current
		if wasCubic {
			c1 = reflect(b.lastCubic, b.current)
		}
		b.cubic(c1, point(0), point(2))
	case 'Q':
		b.quadratic(point(0), point(2))
	case 'T':
		c := b.current
		if wasQuad {
			c = reflect(b.lastQuad, b.current)
		}
		b.quadratic(c, point(0))
	case 'A':
		newArc(a).toCubics(b.current, b.line, func(c1, c2, end f64.Vec2) {
			b.cubic(c1, c2, end)
			b.afterCubic = false
		})
	}
}

func (b *contourBuilder) line(p f64.Vec2) {
	b.out.lineTo(p)
	b.current = p
}

func (b *contourBuilder) cubic(c1, c2, end f64.Vec2) {
	flattenCubic(b.current, c1, c2, end, FlattenTolerance, maxFlattenDepth, b.out.lineTo)
	b.current = end
	b.lastCubic, b.afterCubic = c2, true
}

func (b *contourBuilder) quadratic(c, end f64.Vec2) {
	flattenQuadratic(b.current, c, end, FlattenTolerance, maxFlattenDepth, b.out.lineTo)
	b.current = end
	b.lastQuad, b.afterQuadratic = c, true
}

// flattenQuadratic recursively subdivides a quadratic bézier,
// calling `emit` with the end point of every flat enough piece.
func flattenQuadratic(p0, p1, p2 f64.Vec2, tolerance float64, depth int, emit func(f64.Vec2)) {
	if depth == 0 || !(distanceToLine(p1, p0, p2) >= tolerance) {
		emit(p2)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)
	flattenQuadratic(p0, q0, q2, tolerance, depth-1, emit)
	flattenQuadratic(q2, q1, p2, tolerance, depth-1, emit)
}

// flattenCubic is the same as flattenQuadratic for cubic béziers,
// using de Casteljau's subdivision.
func flattenCubic(p0, p1, p2, p3 f64.Vec2, tolerance float64, depth int, emit func(f64.Vec2)) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth == 0 || !(dist >= tolerance) {
		emit(p3)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, depth-1, emit)
	flattenCubic(s, r1, q2, p3, tolerance, depth-1, emit)
}

// distanceToLine returns the distance from `p` to the segment [a, b].
func distanceToLine(p, a, b f64.Vec2) float64 {
	ab := f64.Vec2{b[0] - a[0], b[1] - a[1]}
	abLenSq := ab[0]*ab[0] + ab[1]*ab[1]
	if abLenSq < 1e-20 {
		return distance(p, a)
	}
	t := ((p[0]-a[0])*ab[0] + (p[1]-a[1])*ab[1]) / abLenSq
	switch {
	case t < 0:
		return distance(p, a)
	case t > 1:
		return distance(p, b)
	}
	return distance(p, f64.Vec2{a[0] + ab[0]*t, a[1] + ab[1]*t})
}

func lerp(p, q f64.Vec2, t float64) f64.Vec2 {
	return f64.Vec2{p[0] + (q[0]-p[0])*t, p[1] + (q[1]-p[1])*t}
}

func distance(p, q f64.Vec2) float64 { return math.Hypot(q[0]-p[0], q[1]-p[1]) }

// reflect returns the reflection of `p` about `center`
func reflect(p, center f64.Vec2) f64.Vec2 {
	return f64.Vec2{2*center[0] - p[0], 2*center[1] - p[1]}
}
