// Implements a raster backend to reveal SVG artworks,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/svgreveal/svgdraw"
	"github.com/benoitkugler/svgreveal/svgicon"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// View describes the output image.
type View struct {
	Width, Height int
	Margin        float64     // in pixels, on each side
	Background    color.Color // nil for transparent
}

// Renderer draws frames into an RGBA image, the content
// being centered and scaled to fit the view.
type Renderer struct {
	img    *image.RGBA
	view   View
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	vp     svgdraw.Viewport
}

// NewRenderer returns a renderer mapping the `content` rectangle,
// in artwork coordinates (y axis pointing up), to a new image.
func NewRenderer(content svgicon.Bounds, view View) *Renderer {
	w, h := view.Width, view.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	// the filler needs its own scanner to keep its color
	fillScanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	rd := &Renderer{
		img:    img,
		view:   view,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, fillScanner),
	}
	rd.filler.SetWinding(true)
	rd.vp = svgdraw.Fit(content, float64(w), float64(h), view.Margin)
	return rd
}

// Image returns the image drawn into. It is
// updated in place by every frame.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

func (rd *Renderer) toPixel(p f64.Vec2) fixed.Point26_6 {
	return rasterx.ToFixedP(rd.vp.Project(p))
}

// Clear paints the background over the whole image.
func (rd *Renderer) Clear() {
	var bg image.Image = image.Transparent
	if rd.view.Background != nil {
		bg = image.NewUniform(rd.view.Background)
	}
	draw.Draw(rd.img, rd.img.Bounds(), bg, image.Point{}, draw.Src)
}

func (rd *Renderer) Stroke(points []f64.Vec2, c color.NRGBA, width float64) {
	if len(points) < 2 {
		return
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(width*rd.vp.Scale*64), 4*64,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	rd.dasher.SetColor(c)
	rd.dasher.Start(rd.toPixel(points[0]))
	for _, p := range points[1:] {
		rd.dasher.Line(rd.toPixel(p))
	}
	rd.dasher.Stop(false)
	rd.dasher.Draw()
}

func (rd *Renderer) Fill(points []f64.Vec2, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	rd.filler.Clear()
	rd.filler.SetColor(c)
	rd.filler.Start(rd.toPixel(points[0]))
	for _, p := range points[1:] {
		rd.filler.Line(rd.toPixel(p))
	}
	rd.filler.Stop(true)
	rd.filler.Draw()
}

// Flush does nothing: the image is always up to date.
func (rd *Renderer) Flush() error { return nil }

// RenderFrame draws `frame` into a new image, fitting `content` to the view.
func RenderFrame(frame []svgdraw.Drawable, content svgicon.Bounds, view View) (*image.RGBA, error) {
	rd := NewRenderer(content, view)
	if err := svgdraw.DrawFrame(rd, frame); err != nil {
		return nil, err
	}
	return rd.img, nil
}
