package svgicon

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor decodes an SVG color: hexadecimal notation (#rgb, #rgba,
// #rrggbb, #rrggbbaa), rgb() and rgba() functions, the transparent and none
// keywords and the SVG named colors.
// In rgba(), an alpha of at most 1 is a fraction (so rgba(0,0,0,1) is opaque),
// a larger one is a byte value; a percentage is always a fraction.
// Anything else (including url(...) references and currentColor)
// returns `fallback` unchanged.
func ParseColor(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHexColor(s[1:]); ok {
			return c
		}
	case strings.HasPrefix(lower, "rgb"):
		if c, ok := parseRGBFunc(lower); ok {
			return c
		}
	case lower == "transparent" || lower == "none":
		return color.NRGBA{}
	default:
		if c, ok := colornames.Map[lower]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return fallback
}

// parseHexColor expects 3, 4, 6 or 8 hexadecimal digits
func parseHexColor(digits string) (color.NRGBA, bool) {
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for i := 0; i < len(digits); i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		digits = b.String()
	}
	if len(digits) != 6 && len(digits) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(digits) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// parseRGBFunc handles rgb(r, g, b) and rgba(r, g, b, a),
// with channels as numbers or percentages.
func parseRGBFunc(s string) (color.NRGBA, bool) {
	start, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if start < 0 || end < start {
		return color.NRGBA{}, false
	}
	fields := strings.FieldsFunc(s[start+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return color.NRGBA{}, false
	}
	var channels [4]uint8
	channels[3] = 0xff
	for i, field := range fields {
		v, isPercent, err := parsePercentOrNumber(field)
		if err != nil {
			return color.NRGBA{}, false
		}
		switch {
		case isPercent:
			v = v * 255 / 100
		case i == 3 && v <= 1: // alpha as a CSS fraction
			v *= 255
		}
		channels[i] = clampByte(v)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}

func parsePercentOrNumber(s string) (v float64, isPercent bool, err error) {
	if strings.HasSuffix(s, "%") {
		s, isPercent = strings.TrimSuffix(s, "%"), true
	}
	v, err = strconv.ParseFloat(s, 64)
	return v, isPercent, err
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
