// Implements a PDF backend to reveal SVG artworks,
// by wrapping github.com/jung-kurt/gofpdf.
// Every frame is written on its own page.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/svgreveal/svgdraw"
	"github.com/benoitkugler/svgreveal/svgicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/f64"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Page is the layout of one frame, in points.
type Page struct {
	Width, Height float64
	Margin        float64
}

// DefaultPage is a square page with small margins.
var DefaultPage = Page{Width: 400, Height: 400, Margin: 20}

// NewDocument returns a pdf document using points as unit,
// whose default page size is `page`.
func NewDocument(page Page) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Renderer writes frames in a pdf document.
// A page is added lazily, when the first operation of a frame
// is issued, so that clearing several times does not create empty pages.
type Renderer struct {
	pdf      *gofpdf.Fpdf
	vp       svgdraw.Viewport
	pageOpen bool
}

// NewRenderer return a renderer which will write to the given `pdf`,
// fitting `content` (in artwork coordinates) in its pages.
func NewRenderer(pdf *gofpdf.Fpdf, content svgicon.Bounds, margin float64) *Renderer {
	w, h := pdf.GetPageSize()
	return &Renderer{pdf: pdf, vp: svgdraw.Fit(content, w, h, margin)}
}

// Clear starts a new frame.
func (r *Renderer) Clear() { r.pageOpen = false }

func (r *Renderer) page() {
	if !r.pageOpen {
		r.pdf.AddPage()
		r.pageOpen = true
	}
}

// implements the common path commands,
// shared by the fill and the stroke
func (r *Renderer) path(points []f64.Vec2) {
	r.pdf.MoveTo(r.vp.Project(points[0]))
	for _, p := range points[1:] {
		r.pdf.LineTo(r.vp.Project(p))
	}
}

func (r *Renderer) Stroke(points []f64.Vec2, c color.NRGBA, width float64) {
	r.page()
	if len(points) < 2 {
		return
	}
	r.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetAlpha(float64(c.A)/255, "Normal")
	r.pdf.SetLineWidth(width * r.vp.Scale)
	r.pdf.SetLineCapStyle("round")
	r.pdf.SetLineJoinStyle("round")
	r.path(points)
	r.pdf.DrawPath("D")
}

func (r *Renderer) Fill(points []f64.Vec2, c color.NRGBA) {
	r.page()
	if len(points) < 3 {
		return
	}
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetAlpha(float64(c.A)/255, "Normal")
	r.path(points)
	r.pdf.ClosePath()
	r.pdf.DrawPath("f") // non zero winding
}

// Flush ends the frame, adding an empty page if nothing was drawn,
// and reports the errors of the document.
func (r *Renderer) Flush() error {
	r.page()
	r.pageOpen = false
	return r.pdf.Error()
}

// RenderStoryboard writes `frames` to `out`, one page per frame,
// fitting `content` on each page.
func RenderStoryboard(out io.Writer, frames [][]svgdraw.Drawable, content svgicon.Bounds, page Page, title string) error {
	pdf := NewDocument(page)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	r := NewRenderer(pdf, content, page.Margin)
	for _, frame := range frames {
		if err := svgdraw.DrawFrame(r, frame); err != nil {
			return err
		}
	}
	return pdf.Output(out)
}
