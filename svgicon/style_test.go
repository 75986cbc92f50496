package svgicon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	for _, test := range []struct {
		input    string
		expected color.NRGBA
	}{
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}},
		{"#F008", color.NRGBA{R: 0xff, A: 0x88}},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{"#10203080", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}},
		{"  #00ff00 ", color.NRGBA{G: 0xff, A: 0xff}},
		{"rgb(255, 0, 0)", color.NRGBA{R: 0xff, A: 0xff}},
		{"rgb(10 20 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}},
		{"rgba(0, 0, 255, 0.5)", color.NRGBA{B: 0xff, A: 128}},
		{"rgba(0, 0, 255, 1)", color.NRGBA{B: 0xff, A: 0xff}},
		{"rgba(0, 0, 255, 128)", color.NRGBA{B: 0xff, A: 128}},
		{"rgba(0, 0, 0, 50%)", color.NRGBA{A: 128}},
		{"rgb(100%, 0%, 50%)", color.NRGBA{R: 0xff, B: 128, A: 0xff}},
		{"rgb(300, -5, 0)", color.NRGBA{R: 0xff, A: 0xff}},
		{"transparent", color.NRGBA{}},
		{"none", color.NRGBA{}},
		{"red", color.NRGBA{R: 0xff, A: 0xff}},
		{"SteelBlue", color.NRGBA{R: 70, G: 130, B: 180, A: 0xff}},
		// fallbacks
		{"#12345", fallback},
		{"#ggg", fallback},
		{"rgb(1, 2)", fallback},
		{"rgb(a, b, c)", fallback},
		{"url(#gradient)", fallback},
		{"currentColor", fallback},
		{"notacolor", fallback},
		{"", fallback},
	} {
		assert.Equal(t, test.expected, ParseColor(test.input, fallback), test.input)
	}
}

func ptr[T any](v T) *T { return &v }

func TestResolveSettings(t *testing.T) {
	defaults := NewDrawSettings(black, blue, 4)

	// nothing set
	s := ResolveSettings(StyleProps{}, defaults)
	assert.Equal(t, defaults, s)

	// opacity narrowed independently for each branch
	s = ResolveSettings(StyleProps{
		Fill:          ptr("red"),
		Stroke:        ptr("red"),
		Opacity:       ptr(0.8),
		FillOpacity:   ptr(0.5),
		StrokeOpacity: ptr(1.),
	}, defaults)
	assert.Equal(t, uint8(128), s.FillColor.A)
	assert.Equal(t, uint8(204), s.StrokeColor.A)

	// fill-opacity without fill keeps the default fill
	s = ResolveSettings(StyleProps{FillOpacity: ptr(0.)}, defaults)
	assert.Equal(t, black, s.FillColor)
	assert.True(t, s.NeedFill)

	// stroke width requires a stroke
	s = ResolveSettings(StyleProps{StrokeWidth: ptr(10.)}, defaults)
	assert.Equal(t, 4., s.LineWidth)
	s = ResolveSettings(StyleProps{Stroke: ptr("green"), StrokeWidth: ptr(10.)}, defaults)
	assert.Equal(t, 10., s.LineWidth)

	// flags follow alpha
	s = ResolveSettings(StyleProps{Fill: ptr("none"), Stroke: ptr("red"), Opacity: ptr(0.)}, defaults)
	assert.False(t, s.NeedFill)
	assert.False(t, s.NeedStroke)

	// unknown colors fall back to the defaults, with opacity
	s = ResolveSettings(StyleProps{Fill: ptr("currentColor"), Opacity: ptr(0.5)}, defaults)
	assert.Equal(t, color.NRGBA{A: 128}, s.FillColor)
}

func TestParseStyleProps(t *testing.T) {
	props, err := ParseStyleProps(map[string]string{
		"fill":         " red ",
		"stroke-width": "2px",
		"opacity":      "50%",
		"font-size":    "12pt",
	})
	require.NoError(t, err)
	assert.Equal(t, "red", *props.Fill)
	assert.Nil(t, props.Stroke)
	assert.Equal(t, 2., *props.StrokeWidth)
	assert.Equal(t, 0.5, *props.Opacity)

	props, err = ParseStyleProps(map[string]string{"stroke-width": "1in"})
	require.NoError(t, err)
	assert.Equal(t, 96., *props.StrokeWidth)

	_, err = ParseStyleProps(map[string]string{"opacity": "half"})
	assert.Error(t, err)
	_, err = ParseStyleProps(map[string]string{"stroke-width": "5%"})
	assert.Error(t, err)
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	p := m.Transform([2]float64{1, 1})
	assert.Equal(t, [2]float64{12, 23}, [2]float64(p))

	m = Identity.Mult(Matrix2D{A: 1, B: 0, C: 0, D: 1, E: 5, F: 6})
	assert.Equal(t, Identity.Translate(5, 6), m)

	p = Identity.SkewX(0).Transform([2]float64{3, 4})
	assert.Equal(t, [2]float64{3, 4}, [2]float64(p))
}
