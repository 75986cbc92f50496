package svgicon

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/svgreveal/svgpath"
	"github.com/tdewolff/parse/v2/strconv"
)

// styleState is one level of the style stack
type styleState struct {
	props     StyleProps
	transform Matrix2D // current transform
}

// initial values of the root element
var rootStyle = func() styleState {
	fill, stroke := "black", "none"
	return styleState{props: StyleProps{Fill: &fill, Stroke: &stroke}, transform: Identity}
}()

// artworkCursor is used while parsing SVG files
type artworkCursor struct {
	opts    Options
	logger  *slog.Logger
	artwork *Artwork
	limits  *RectLimits

	styleStack []styleState
	points     []float64 // scratch buffer for number lists

	seenSVG  bool // the first svg element has started
	done     bool // the first svg element is closed
	svgDepth int  // nesting level inside the first svg element

	// > 0 inside an element whose content is not drawn,
	// such as defs or title
	skipDepth               int
	inTitleText, inDescText bool
}

func newArtworkCursor(opts Options) *artworkCursor {
	return &artworkCursor{
		opts:       opts,
		logger:     opts.logger(),
		artwork:    new(Artwork),
		limits:     NewRectLimits(),
		styleStack: []styleState{rootStyle},
	}
}

func (c *artworkCursor) top() styleState { return c.styleStack[len(c.styleStack)-1] }

// handleError applies the error mode: the error is returned in strict mode,
// logged in warn mode and dropped otherwise.
func (c *artworkCursor) handleError(err error) error {
	switch c.opts.ErrorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		c.logger.Warn("svg: skipping unsupported content", "err", err)
	}
	return nil
}

// elements whose content is never drawn
var skippedElements = map[string]bool{
	"defs":           true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"style":          true,
	"script":         true,
	"clipPath":       true,
	"mask":           true,
	"symbol":         true,
	"marker":         true,
	"pattern":        true,
	"filter":         true,
	"linearGradient": true,
	"radialGradient": true,
}

func (c *artworkCursor) readStartElement(se xml.StartElement) error {
	name := se.Name.Local
	if !c.seenSVG {
		if name != "svg" {
			return nil // looking for the first svg element
		}
		c.seenSVG = true
	}
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	c.svgDepth++
	if skippedElements[name] {
		c.skipDepth = 1
		switch name {
		case "title":
			c.inTitleText = true
			c.artwork.Titles = append(c.artwork.Titles, "")
		case "desc":
			c.inDescText = true
			c.artwork.Descriptions = append(c.artwork.Descriptions, "")
		}
		return nil
	}

	// Reads all recognized style attributes from the start element
	// and places it on top of the styleStack
	if err := c.pushStyle(se.Attr); err != nil {
		if err = c.handleError(fmt.Errorf("element %s: %w", name, err)); err != nil {
			return err
		}
	}

	df, ok := drawFuncs[name]
	if !ok {
		return c.handleError(fmt.Errorf("cannot process svg element %s", name))
	}
	if err := df(c, se.Attr); err != nil {
		return c.handleError(fmt.Errorf("element %s: %w", name, err))
	}
	return nil
}

func (c *artworkCursor) readEndElement(se xml.EndElement) {
	if !c.seenSVG || c.done {
		return
	}
	if c.skipDepth > 0 {
		c.skipDepth--
		if c.skipDepth == 0 {
			c.inTitleText, c.inDescText = false, false
			c.svgDepth--
		}
		return
	}
	// pop style
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
	c.svgDepth--
	if c.svgDepth == 0 {
		c.done = true
	}
}

func (c *artworkCursor) readCharData(data xml.CharData) {
	if c.inTitleText {
		c.artwork.Titles[len(c.artwork.Titles)-1] += string(data)
	}
	if c.inDescText {
		c.artwork.Descriptions[len(c.artwork.Descriptions)-1] += string(data)
	}
}

// pushStyle parses the presentation attributes, then the style attribute,
// and pushes the result on the style stack. A state is always pushed, even
// on error, so that the stack matches the element nesting.
func (c *artworkCursor) pushStyle(attrs []xml.Attr) error {
	// Make a copy of the top style
	parent := c.top()
	cur := styleState{props: parent.props.inherit(), transform: parent.transform}
	defer func() { c.styleStack = append(c.styleStack, cur) }()

	var inline string
	for _, attr := range attrs {
		switch k := strings.ToLower(attr.Name.Local); k {
		case "style":
			inline = attr.Value
		case "transform":
			m, err := c.parseTransform(parent.transform, attr.Value)
			if err != nil {
				return err
			}
			cur.transform = m
		default:
			if err := cur.props.set(k, attr.Value, c.viewportDiag()); err != nil {
				return err
			}
		}
	}
	if inline == "" {
		return nil
	}
	// inline declarations take precedence over attributes
	decls, err := parser.ParseDeclarations(terminateDeclarations(inline))
	if err != nil {
		return fmt.Errorf("invalid style attribute: %w", err)
	}
	for _, decl := range decls {
		if err := cur.props.set(strings.ToLower(decl.Property), decl.Value, c.viewportDiag()); err != nil {
			return err
		}
	}
	return nil
}

// terminateDeclarations appends the final ';' that douceur requires
// to read the value of the last declaration.
func terminateDeclarations(style string) string {
	style = strings.TrimSpace(style)
	if style == "" || strings.HasSuffix(style, ";") {
		return style
	}
	return style + ";"
}

// getPoints reads a list of numbers separated by spaces or commas,
// storing them in c.points
func (c *artworkCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	data := []byte(dataPoints)
	for i := 0; i < len(data); {
		if b := data[i]; b == ' ' || b == ',' || b == '\n' || b == '\t' || b == '\r' {
			i++
			continue
		}
		f, n := strconv.ParseFloat(data[i:])
		if n == 0 {
			return fmt.Errorf("invalid number list %q", dataPoints)
		}
		c.points = append(c.points, f)
		i += n
	}
	return nil
}

func (c *artworkCursor) readTransformAttr(m1 Matrix2D, k string) (Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5],
			})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform composes the transform list `v` with `m1`
func (c *artworkCursor) parseTransform(m1 Matrix2D, v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		t = strings.TrimLeft(t, ", ")
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, fmt.Errorf("transform %q: %w", t+")", err)
		}
	}
	return m1, nil
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// viewportDiag is the reference length of percentages
// which are not along an axis
func (c *artworkCursor) viewportDiag() float64 {
	vb := c.artwork.ViewBox
	return math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2
}

// parseUnit parses a length, resolving percentages against the viewBox
func (c *artworkCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	var ref float64
	switch asPerc {
	case widthPercentage:
		ref = c.artwork.ViewBox.W
	case heightPercentage:
		ref = c.artwork.ViewBox.H
	case diagPercentage:
		ref = c.viewportDiag()
	}
	return parseLength(s, ref)
}

// addShape tessellates a basic shape, with the current style
func (c *artworkCursor) addShape(shape svgpath.Shape) error {
	d := svgpath.Normalizer{Truncate: c.opts.TruncateShapes}.ToPath(shape)
	return c.addPathData(d, shape.Closed())
}

// addPathData tessellates every subpath of `d`, with the current style
func (c *artworkCursor) addPathData(d string, closeShape bool) error {
	cmds, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	style := c.top()
	settings := ResolveSettings(style.props, c.opts.Defaults)
	for _, sub := range svgpath.SplitSubpaths(cmds) {
		de, ok, err := Tessellate(sub, settings, style.transform, closeShape, c.opts.Threshold, c.limits)
		if err != nil {
			return err
		}
		if ok {
			c.artwork.Elements = append(c.artwork.Elements, de)
		}
	}
	return nil
}
