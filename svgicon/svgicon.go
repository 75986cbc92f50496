// Provides parsing of SVG images into tessellated, styled
// outlines, which can then be consumed by painting drivers.
// See for example svgreveal/svgraster or svgreveal/svgpdf .
package svgicon

import (
	"encoding/xml"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgreveal/svgpath"
	"golang.org/x/image/math/f64"
	"golang.org/x/net/html/charset"
)

// Artwork holds the compiled outlines of an SVG image,
// in drawing order.
type Artwork struct {
	Elements []DrawElement

	ContentSize f64.Vec2 // width and height of the outlines
	Anchor      f64.Vec2 // normalized position of the origin in the content box
	Bounds      Bounds   // extent of the outlines, with the y axis up

	ViewBox       Bounds
	Width, Height string   // top level width and height attributes
	Titles        []string // Title elements collect here
	Descriptions  []string // Description elements collect here
}

// PointCount returns the total number of points of the artwork.
func (a *Artwork) PointCount() int {
	var n int
	for _, el := range a.Elements {
		n += el.PointCount()
	}
	return n
}

func (a *Artwork) setLimits(limits *RectLimits) {
	a.Bounds = limits.Bounds()
	a.ContentSize[0], a.ContentSize[1] = limits.ContentSize()
	a.Anchor[0], a.Anchor[1] = limits.Anchor()
}

// Options controls the compilation of an artwork.
type Options struct {
	// Threshold is the number of samples per user unit, and must be
	// strictly positive. Higher values give more accurate outlines,
	// at the cost of more points.
	Threshold float64

	// Defaults are used for absent or invalid style properties.
	Defaults DrawSettings

	// ErrorMode determines if unsupported elements and malformed path data
	// are ignored, logged or abort the compilation.
	ErrorMode ErrorMode

	// TruncateShapes truncates the attributes of basic shapes to integers.
	TruncateShapes bool

	// Logger is used in WarnErrorMode. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns one sample per user unit, the DefaultSettings
// and warnings for unsupported elements.
func DefaultOptions() Options {
	return Options{Threshold: 1, Defaults: DefaultSettings, ErrorMode: WarnErrorMode}
}

func (opts Options) logger() *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.Default()
}

// ReadArtworkStream reads and compiles the SVG image from the given io.Reader.
// Only the first svg element is used; a document without svg element
// returns an *InvalidInputError.
// This only supports a sub-set of SVG (basic shapes and paths, with colors and
// opacity), but is enough to draw many icons.
func ReadArtworkStream(stream io.Reader, opts Options) (*Artwork, error) {
	if !validThreshold(opts.Threshold) {
		return nil, ErrInvalidThreshold
	}
	cursor := newArtworkCursor(opts)
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for !cursor.done {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &InvalidInputError{Reason: "malformed xml", Err: err}
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			err = cursor.readStartElement(se)
		case xml.EndElement:
			cursor.readEndElement(se)
		case xml.CharData:
			cursor.readCharData(se)
		}
		if err != nil {
			return nil, err
		}
	}
	if !cursor.seenSVG {
		return nil, &InvalidInputError{Reason: "no svg element"}
	}
	cursor.artwork.setLimits(cursor.limits)
	return cursor.artwork, nil
}

// ReadArtwork reads the artwork from the named file.
func ReadArtwork(file string, opts Options) (*Artwork, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadArtworkStream(fin, opts)
}

// ArtworkFromPath compiles raw path data, styled with `props`.
// Each subpath is tessellated as an open outline.
func ArtworkFromPath(d string, props StyleProps, opts Options) (*Artwork, error) {
	if !validThreshold(opts.Threshold) {
		return nil, ErrInvalidThreshold
	}
	cmds, err := svgpath.Parse(d)
	if err != nil {
		return nil, err
	}
	limits := NewRectLimits()
	settings := ResolveSettings(props, opts.Defaults)
	artwork := new(Artwork)
	for _, sub := range svgpath.SplitSubpaths(cmds) {
		de, ok, err := Tessellate(sub, settings, Identity, false, opts.Threshold, limits)
		if err != nil {
			return nil, err
		}
		if ok {
			artwork.Elements = append(artwork.Elements, de)
		}
	}
	artwork.setLimits(limits)
	return artwork, nil
}
