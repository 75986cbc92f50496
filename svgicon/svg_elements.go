package svgicon

import (
	"encoding/xml"
	"errors"
	"math"

	"github.com/benoitkugler/svgreveal/svgpath"
)

type svgFunc func(c *artworkCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"a":        gF,
	"switch":   gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

func svgF(c *artworkCursor, attrs []xml.Attr) error {
	if c.svgDepth != 1 { // nested svg elements are plain groups
		return nil
	}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			if err = c.getPoints(attr.Value); err != nil {
				return err
			}
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.artwork.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
		case "width":
			c.artwork.Width = attr.Value
			width, err = parseLength(attr.Value, 0)
		case "height":
			c.artwork.Height = attr.Value
			height, err = parseLength(attr.Value, 0)
		}
		if err != nil {
			return err
		}
	}
	if c.artwork.ViewBox.W == 0 {
		c.artwork.ViewBox.W = width
	}
	if c.artwork.ViewBox.H == 0 {
		c.artwork.ViewBox.H = height
	}
	return nil
}

func gF(*artworkCursor, []xml.Attr) error { return nil } // g does nothing but push the style

func rectF(c *artworkCursor, attrs []xml.Attr) error {
	var (
		r            svgpath.Rect
		hasRX, hasRY bool
		err          error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			r.X, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			r.Y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			r.W, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			r.H, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			hasRX = true
			r.RX, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			hasRY = true
			r.RY, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if r.W <= 0 || r.H <= 0 { // not drawn, but not an error
		return nil
	}
	if hasRX && !hasRY {
		r.RY = r.RX
	} else if hasRY && !hasRX {
		r.RX = r.RY
	}
	r.RX = math.Min(math.Max(r.RX, 0), r.W/2)
	r.RY = math.Min(math.Max(r.RY, 0), r.H/2)
	return c.addShape(r)
}

func circleF(c *artworkCursor, attrs []xml.Attr) error {
	var (
		cx, cy, rx, ry float64
		hasRX, hasRY   bool
		err            error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry, hasRX, hasRY = rx, true, true
		case "rx":
			hasRX = true
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			hasRY = true
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if hasRX && !hasRY {
		ry = rx
	} else if hasRY && !hasRX {
		rx = ry
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	if rx == ry {
		return c.addShape(svgpath.Circle{CX: cx, CY: cy, R: rx})
	}
	return c.addShape(svgpath.Ellipse{CX: cx, CY: cy, RX: rx, RY: ry})
}

func lineF(c *artworkCursor, attrs []xml.Attr) error {
	var l svgpath.Line
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			l.X1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			l.X2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			l.Y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			l.Y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	return c.addShape(l)
}

// readPoints returns the points attribute of polylines and polygons,
// or nil if there is not enough points to draw
func readPoints(c *artworkCursor, attrs []xml.Attr) ([]float64, error) {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return nil, err
		}
		if len(c.points)%2 != 0 {
			return nil, errors.New("polygon has odd number of points")
		}
	}
	if len(c.points) < 4 {
		return nil, nil
	}
	return append([]float64(nil), c.points...), nil
}

func polylineF(c *artworkCursor, attrs []xml.Attr) error {
	c.points = c.points[:0]
	points, err := readPoints(c, attrs)
	if err != nil || points == nil {
		return err
	}
	return c.addShape(svgpath.Polyline{Points: points})
}

func polygonF(c *artworkCursor, attrs []xml.Attr) error {
	c.points = c.points[:0]
	points, err := readPoints(c, attrs)
	if err != nil || points == nil {
		return err
	}
	return c.addShape(svgpath.Polygon{Points: points})
}

func pathF(c *artworkCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			return c.addPathData(attr.Value, false)
		}
	}
	return nil
}
