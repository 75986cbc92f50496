package svgicon

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/svgreveal/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func readString(t *testing.T, svg string, opts Options) *Artwork {
	t.Helper()
	a, err := ReadArtworkStream(strings.NewReader(svg), opts)
	require.NoError(t, err)
	return a
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

func TestReadCircle(t *testing.T) {
	a := readString(t, `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="3"/></svg>`, DefaultOptions())
	require.Len(t, a.Elements, 1)
	b := a.Bounds
	// the y axis is reflected
	assert.InDelta(t, 2, b.X, 0.1)
	assert.InDelta(t, 8, b.X+b.W, 0.1)
	assert.InDelta(t, -8, b.Y, 0.1)
	assert.InDelta(t, -2, b.Y+b.H, 0.1)
	assert.InDelta(t, 6, a.ContentSize[0], 0.1)
	assert.InDelta(t, 6, a.ContentSize[1], 0.1)

	el := a.Elements[0]
	// closed outline
	assert.Equal(t, el.Points[0], el.Points[len(el.Points)-1])
	// root initial values
	assert.Equal(t, black, el.Settings.FillColor)
	assert.True(t, el.Settings.NeedFill)
	assert.False(t, el.Settings.NeedStroke)
}

func TestReadShapes(t *testing.T) {
	a := readString(t, `<svg viewBox="0 0 100 50" width="200" height="100">
		<title>Shapes</title>
		<desc>All the basic shapes</desc>
		<rect x="10" y="10" width="20" height="10" rx="2"/>
		<rect width="0" height="10"/>
		<circle cx="5" cy="5" r="0"/>
		<ellipse cx="50" cy="25" rx="10" ry="5"/>
		<line x1="0" y1="0" x2="10" y2="10"/>
		<polyline points="0,0 10,0 10,10"/>
		<polygon points="0 0 10 0 10 10"/>
		<polygon points="0 0"/>
		<path d="M0 0 L10 0 M20 20 L30 30"/>
	</svg>`, DefaultOptions())
	assert.Len(t, a.Elements, 7)
	assert.Equal(t, Bounds{W: 100, H: 50}, a.ViewBox)
	assert.Equal(t, "200", a.Width)
	assert.Equal(t, []string{"Shapes"}, a.Titles)
	assert.Equal(t, []string{"All the basic shapes"}, a.Descriptions)
}

func TestReadSkipped(t *testing.T) {
	a := readString(t, `<svg>
		<defs><rect width="10" height="10"/></defs>
		<clipPath id="c"><circle r="4"/></clipPath>
		<linearGradient id="g"><stop offset="0"/></linearGradient>
		<g><rect width="10" height="10"/></g>
	</svg>
	<rect width="10" height="10"/>`, DefaultOptions())
	assert.Len(t, a.Elements, 1)
}

func TestReadStyle(t *testing.T) {
	a := readString(t, `<svg>
		<g fill="red" stroke="blue" stroke-width="3" opacity="0.5">
			<rect width="10" height="10"/>
			<rect width="10" height="10" style="fill: #0000ff; stroke-width: 2px"/>
			<rect width="10" height="10" fill="green" style="fill: none"/>
			<rect width="10" height="10" fill-opacity="0.5"/>
		</g>
		<rect width="10" height="10" stroke="url(#grad)"/>
	</svg>`, DefaultOptions())
	require.Len(t, a.Elements, 5)

	// opacity is not inherited
	s := a.Elements[0].Settings
	assert.Equal(t, red, s.FillColor)
	assert.Equal(t, blue, s.StrokeColor)
	assert.Equal(t, 3., s.LineWidth)
	assert.True(t, s.NeedStroke)

	// inline style wins
	s = a.Elements[1].Settings
	assert.Equal(t, blue, s.FillColor)
	assert.Equal(t, 2., s.LineWidth)

	s = a.Elements[2].Settings
	assert.False(t, s.NeedFill)

	assert.Equal(t, uint8(128), a.Elements[3].Settings.FillColor.A)

	// unsupported paint falls back to the defaults
	s = a.Elements[4].Settings
	assert.Equal(t, DefaultSettings.StrokeColor, s.StrokeColor)
	assert.Equal(t, black, s.FillColor)
}

func TestReadInlineStyle(t *testing.T) {
	halfRed := color.NRGBA{R: 0xff, A: 128}
	halfBlue := color.NRGBA{B: 0xff, A: 128}
	for _, test := range []struct {
		style    string
		fill     color.NRGBA
		stroke   color.NRGBA
		width    float64
		needFill bool
	}{
		{"fill: none", color.NRGBA{}, color.NRGBA{}, 1, false},
		{"fill: red", red, color.NRGBA{}, 1, true},
		{"fill: red;", red, color.NRGBA{}, 1, true},
		{"  fill : red ; ", red, color.NRGBA{}, 1, true},
		{"fill:red;opacity:0.5", halfRed, color.NRGBA{}, 1, true},
		{"fill:red;opacity: .5", halfRed, color.NRGBA{}, 1, true},
		{"stroke: blue; stroke-width: 2px", black, blue, 2, true},
		{"stroke:blue;stroke-opacity:50%", black, halfBlue, 1, true},
	} {
		a := readString(t, `<svg><rect width="10" height="10" style="`+test.style+`"/></svg>`,
			Options{Threshold: 1, Defaults: DefaultSettings, ErrorMode: StrictErrorMode})
		require.Len(t, a.Elements, 1, test.style)
		s := a.Elements[0].Settings
		assert.Equal(t, test.fill, s.FillColor, test.style)
		assert.Equal(t, test.stroke, s.StrokeColor, test.style)
		assert.Equal(t, test.width, s.LineWidth, test.style)
		assert.Equal(t, test.needFill, s.NeedFill, test.style)
	}
}

func TestReadInvalidStrokeWidth(t *testing.T) {
	opts := DefaultOptions()
	opts.ErrorMode = IgnoreErrorMode
	// no viewBox: percentages cannot be resolved
	a := readString(t, `<svg>
		<g stroke="red" stroke-width="3">
			<circle r="2" stroke-width="5%"/>
		</g>
		<circle r="2" stroke="red" stroke-width="5%"/>
		<circle r="2" stroke="red" style="stroke-width: wide"/>
	</svg>`, opts)
	require.Len(t, a.Elements, 3)
	assert.Equal(t, 3., a.Elements[0].Settings.LineWidth) // inherited
	assert.Equal(t, 1., a.Elements[1].Settings.LineWidth) // default
	assert.Equal(t, 1., a.Elements[2].Settings.LineWidth)
	assert.Equal(t, red, a.Elements[2].Settings.StrokeColor)

	props := StyleProps{}
	assert.Error(t, props.set(propStrokeWidth, "5%", 0))
	assert.Nil(t, props.StrokeWidth)
}

func TestTerminateDeclarations(t *testing.T) {
	assert.Equal(t, "", terminateDeclarations("  "))
	assert.Equal(t, "fill: red;", terminateDeclarations(" fill: red "))
	assert.Equal(t, "fill:red;opacity:1;", terminateDeclarations("fill:red;opacity:1;"))
}

func TestReadTransform(t *testing.T) {
	a := readString(t, `<svg>
		<g transform="translate(10 20)">
			<line x1="0" y1="0" x2="10" y2="0" transform="scale(2)"/>
		</g>
		<line x1="0" y1="0" x2="10" y2="0" transform="rotate(90)"/>
	</svg>`, DefaultOptions())
	require.Len(t, a.Elements, 2)
	pts := a.Elements[0].Points
	assert.Len(t, pts, 11)
	assert.Equal(t, f64.Vec2{10, -20}, pts[0])
	assert.Equal(t, f64.Vec2{30, -20}, pts[len(pts)-1])

	last := a.Elements[1].Points[10]
	assert.InDelta(t, 0, last[0], 1e-9)
	assert.InDelta(t, -10, last[1], 1e-9)
}

func TestReadTruncate(t *testing.T) {
	const svg = `<svg><circle cx="5.7" cy="5" r="3.9"/></svg>`
	opts := DefaultOptions()
	opts.TruncateShapes = true
	a := readString(t, svg, opts)
	assert.InDelta(t, 2, a.Bounds.X, 0.1)
	assert.InDelta(t, 6, a.ContentSize[0], 0.1)

	a = readString(t, svg, DefaultOptions())
	assert.InDelta(t, 1.8, a.Bounds.X, 0.1)
	assert.InDelta(t, 7.8, a.ContentSize[0], 0.1)
}

func TestReadInvalidInput(t *testing.T) {
	for _, input := range []string{
		`<html><body></body></html>`,
		`<svg><rect`,
		``,
		`not xml at all`,
	} {
		_, err := ReadArtworkStream(strings.NewReader(input), DefaultOptions())
		var ie *InvalidInputError
		assert.True(t, errors.As(err, &ie), input)
	}

	// svg nested in another document
	a := readString(t, `<html><body><svg><rect width="1" height="1"/></svg></body></html>`, DefaultOptions())
	assert.Len(t, a.Elements, 1)
}

func TestReadErrorModes(t *testing.T) {
	const svg = `<svg>
		<path d="M1 2 L3"/>
		<text>Hello</text>
		<rect width="10" height="10"/>
	</svg>`

	opts := DefaultOptions()
	opts.ErrorMode = StrictErrorMode
	_, err := ReadArtworkStream(strings.NewReader(svg), opts)
	var perr *svgpath.MalformedPathError
	assert.True(t, errors.As(err, &perr))

	var logs bytes.Buffer
	opts.ErrorMode = WarnErrorMode
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	a, err := ReadArtworkStream(strings.NewReader(svg), opts)
	require.NoError(t, err)
	assert.Len(t, a.Elements, 1)
	assert.Contains(t, logs.String(), "malformed path data")
	assert.Contains(t, logs.String(), "text")

	logs.Reset()
	opts.ErrorMode = IgnoreErrorMode
	a, err = ReadArtworkStream(strings.NewReader(svg), opts)
	require.NoError(t, err)
	assert.Len(t, a.Elements, 1)
	assert.Empty(t, logs.String())
}

func TestReadThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = 0
	_, err := ReadArtworkStream(strings.NewReader(`<svg/>`), opts)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	opts.Threshold = 2
	a := readString(t, `<svg><line x1="0" y1="0" x2="10" y2="0"/></svg>`, opts)
	assert.Len(t, a.Elements[0].Points, 21)
}

func TestArtworkFromPath(t *testing.T) {
	fill := "red"
	a, err := ArtworkFromPath("M0 0 h10 v10 M20 0 h5", StyleProps{Fill: &fill}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, a.Elements, 2)
	assert.Equal(t, red, a.Elements[0].Settings.FillColor)
	assert.Equal(t, 21+6, a.PointCount())
	assert.Equal(t, f64.Vec2{25, 10}, a.ContentSize)

	_, err = ArtworkFromPath("M0 0 L1", StyleProps{}, DefaultOptions())
	var perr *svgpath.MalformedPathError
	assert.True(t, errors.As(err, &perr))
}

func TestParseErrorMode(t *testing.T) {
	for _, m := range []ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		got, err := ParseErrorMode(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseErrorMode("loud")
	assert.Error(t, err)
}
