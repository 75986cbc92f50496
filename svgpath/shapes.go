package svgpath

import (
	"math"
	"strconv"
	"strings"
)

// This file implements the transformation from
// high level shapes to their path data equivalent

// Shape is a basic SVG primitive which may be reduced to a path.
type Shape interface {
	// Closed returns true if the outline must be closed
	// when tessellated.
	Closed() bool

	// pathData writes the commands of the shape to `b`
	pathData(b *pathWriter)
}

// Rect is a rectangle with optional rounded corners of radius RX, RY.
type Rect struct{ X, Y, W, H, RX, RY float64 }

// Circle is a circle of center (CX, CY).
type Circle struct{ CX, CY, R float64 }

// Ellipse is an axis aligned ellipse of center (CX, CY).
type Ellipse struct{ CX, CY, RX, RY float64 }

// Line is a segment between two points.
type Line struct{ X1, Y1, X2, Y2 float64 }

// Polygon is a closed polyline, with coordinates given as x, y pairs.
type Polygon struct{ Points []float64 }

// Polyline is an open polyline, with coordinates given as x, y pairs.
type Polyline struct{ Points []float64 }

func (Rect) Closed() bool     { return true }
func (Circle) Closed() bool   { return true }
func (Ellipse) Closed() bool  { return true }
func (Line) Closed() bool     { return false }
func (Polygon) Closed() bool  { return true } // closed by the tessellator, not by the path data
func (Polyline) Closed() bool { return false }

// Normalizer converts shapes to path data.
type Normalizer struct {
	// Truncate truncates every numeric attribute toward zero
	// before building the path, which reproduces the output of
	// older integer based renderers (at the cost of precision).
	Truncate bool
}

// ToPath returns the path data equivalent to `shape`.
func (n Normalizer) ToPath(shape Shape) string {
	w := pathWriter{truncate: n.Truncate}
	shape.pathData(&w)
	return strings.TrimSpace(w.b.String())
}

type pathWriter struct {
	b        strings.Builder
	truncate bool
}

func (w *pathWriter) value(v float64) float64 {
	if w.truncate {
		return math.Trunc(v)
	}
	return v
}

// cmd writes a command letter followed by already normalized numbers
func (w *pathWriter) cmd(letter byte, args ...float64) {
	if w.b.Len() > 0 {
		w.b.WriteByte(' ')
	}
	w.b.WriteByte(letter)
	for i, a := range args {
		if i > 0 {
			w.b.WriteByte(' ')
		}
		if a == 0 {
			a = 0 // no negative zero
		}
		w.b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
	}
}

func (r Rect) pathData(w *pathWriter) {
	x, y, width, height := w.value(r.X), w.value(r.Y), w.value(r.W), w.value(r.H)
	rx, ry := w.value(r.RX), w.value(r.RY)
	innerW, innerH := width-rx*2, height-ry*2
	w.cmd('M', x+rx, y)
	w.cmd('h', innerW)
	w.cmd('s', rx, 0, rx, ry)
	w.cmd('v', innerH)
	w.cmd('s', 0, ry, -rx, ry)
	w.cmd('h', -innerW)
	w.cmd('s', -rx, 0, -rx, -ry)
	w.cmd('v', -innerH)
	w.cmd('s', 0, -ry, rx, -ry)
}

// two opposing half arcs, starting on the left
func ellipsePath(w *pathWriter, cx, cy, rx, ry float64) {
	w.cmd('M', cx-rx, cy)
	w.cmd('a', rx, ry, 0, 1, 0, rx*2, 0)
	w.cmd('a', rx, ry, 0, 1, 0, -rx*2, 0)
}

func (c Circle) pathData(w *pathWriter) {
	r := w.value(c.R)
	ellipsePath(w, w.value(c.CX), w.value(c.CY), r, r)
}

func (e Ellipse) pathData(w *pathWriter) {
	ellipsePath(w, w.value(e.CX), w.value(e.CY), w.value(e.RX), w.value(e.RY))
}

func (l Line) pathData(w *pathWriter) {
	w.cmd('M', w.value(l.X1), w.value(l.Y1))
	w.cmd('L', w.value(l.X2), w.value(l.Y2))
}

func pointsPath(w *pathWriter, points []float64) {
	values := make([]float64, len(points))
	for i, v := range points {
		values[i] = w.value(v)
	}
	w.cmd('M', values...)
}

func (p Polygon) pathData(w *pathWriter)  { pointsPath(w, p.Points) }
func (p Polyline) pathData(w *pathWriter) { pointsPath(w, p.Points) }
