package svgpath

import (
	"math"

	"golang.org/x/image/math/f64"
)

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// arc holds the arguments of an elliptical arc command,
// in absolute coordinates.
type arc struct {
	rx, ry          float64
	rotation        float64 // in degrees
	largeArc, sweep bool
	end             f64.Vec2
}

func newArc(abs []float64) arc {
	return arc{
		rx: math.Abs(abs[0]), ry: math.Abs(abs[1]),
		rotation: abs[2],
		largeArc: abs[3] != 0, sweep: abs[4] != 0,
		end: f64.Vec2{abs[5], abs[6]},
	}
}

// toCubics approximates the arc starting at `start` by cubic béziers, calling
// `cubic` for each of them. The radii are scaled up if no ellipse
// may join the two points.
// Degenerate arcs follow the usual rules: a zero radius is a straight line
// (reported with `line`) and identical end points draw nothing.
func (a arc) toCubics(start f64.Vec2, line func(end f64.Vec2), cubic func(c1, c2, end f64.Vec2)) {
	if start == a.end {
		return
	}
	if a.rx == 0 || a.ry == 0 {
		line(a.end)
		return
	}
	rotX := a.rotation * math.Pi / 180
	rx, ry := a.rx, a.ry
	cx, cy := findEllipseCenter(&rx, &ry, rotX, start[0], start[1], a.end[0], a.end[1], a.sweep, a.largeArc)

	startAngle := math.Atan2(start[1]-cy, start[0]-cx) - rotX
	endAngle := math.Atan2(a.end[1]-cy, a.end[0]-cx) - rotX
	arcBig := math.Abs(endAngle-startAngle) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != a.largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the center is the midpoint of start and end
	if deltaEta < 0 && a.sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !a.sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)

	last := start
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		p := a.end // exact end point, no roundoff error
		if i != segs {
			p[0], p[1] = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		cubic(f64.Vec2{last[0] + alpha*ldx, last[1] + alpha*ldy},
			f64.Vec2{p[0] - alpha*dx, p[1] - alpha*dy}, p)
		last, ldx, ldy = p, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse. If it does not exist,
// `ra` and `rb` are increased minimally for a solution to be possible,
// preserving their ratio. The problem is reduced to finding the center of a
// circle through the origin and an arbitrary point, which is then transformed
// back to the original coordinates.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, largeArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// origin at start point, ellipse x-axis on coordinate x-axis
	nx, ny := endX-startX, endY-startY
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// the ellipse is now a circle of radius rb
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// the span is wider than the ellipse
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// if hr is zero, both answers are the same
	if sweep == largeArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
