package svgicon

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// StyleProps is the subset of presentation properties used to
// resolve the DrawSettings of an element. Nil fields are absent.
type StyleProps struct {
	Fill, Stroke *string

	Opacity, FillOpacity, StrokeOpacity *float64 // fractions, usually in [0, 1]
	StrokeWidth                         *float64 // in user units
}

// supported properties, by name
const (
	propFill          = "fill"
	propStroke        = "stroke"
	propOpacity       = "opacity"
	propFillOpacity   = "fill-opacity"
	propStrokeOpacity = "stroke-opacity"
	propStrokeWidth   = "stroke-width"
)

// ParseStyleProps builds the style record from raw property values,
// such as fill -> "red" or stroke-width -> "2px".
// Unknown properties are ignored. Stroke widths given as percentages
// need a viewport and are rejected.
func ParseStyleProps(props map[string]string) (StyleProps, error) {
	var out StyleProps
	for k, v := range props {
		if err := out.set(k, v, 0); err != nil {
			return out, err
		}
	}
	return out, nil
}

// set updates the property `k` (lower case). Percentages of
// stroke-width are resolved against `viewportDiag`, if not zero.
func (sp *StyleProps) set(k, v string, viewportDiag float64) error {
	v = strings.TrimSpace(v)
	var err error
	switch k {
	case propFill:
		sp.Fill = &v
	case propStroke:
		sp.Stroke = &v
	case propOpacity:
		sp.Opacity, err = readFractionPtr(v)
	case propFillOpacity:
		sp.FillOpacity, err = readFractionPtr(v)
	case propStrokeOpacity:
		sp.StrokeOpacity, err = readFractionPtr(v)
	case propStrokeWidth:
		var w float64
		if w, err = parseLength(v, viewportDiag); err == nil {
			sp.StrokeWidth = &w
		}
	}
	if err != nil {
		return fmt.Errorf("invalid %s property: %w", k, err)
	}
	return nil
}

// inherit copies the inherited properties of the parent style, that is
// every property except opacity.
func (sp StyleProps) inherit() StyleProps {
	sp.Opacity = nil
	return sp
}

// ResolveSettings computes the colors and width of an element from its
// style, falling back to `defaults` for absent properties or unknown colors.
// The opacity applies to both branches, narrowed by fill-opacity for the fill
// and independently by stroke-opacity for the stroke.
func ResolveSettings(props StyleProps, defaults DrawSettings) DrawSettings {
	opacity := 1.
	if props.Opacity != nil {
		opacity = *props.Opacity
	}
	fill, stroke, width := defaults.FillColor, defaults.StrokeColor, defaults.LineWidth

	if props.Fill != nil {
		fillOpacity := opacity
		if props.FillOpacity != nil {
			fillOpacity = math.Min(fillOpacity, *props.FillOpacity)
		}
		fill = withOpacity(ParseColor(*props.Fill, fill), fillOpacity)
	}

	if props.Stroke != nil {
		strokeOpacity := opacity
		if props.StrokeOpacity != nil {
			strokeOpacity = math.Min(strokeOpacity, *props.StrokeOpacity)
		}
		stroke = withOpacity(ParseColor(*props.Stroke, stroke), strokeOpacity)
		if props.StrokeWidth != nil {
			width = *props.StrokeWidth
		}
	}

	return NewDrawSettings(fill, stroke, width)
}

// withOpacity multiplies the alpha channel by `opacity`, clamped to [0, 1]
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	switch {
	case !(opacity > 0): // NaN included
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseFloat(v)
	f /= d
	// fractions can be all values, not just in the range [0,1]
	return
}

func readFractionPtr(v string) (*float64, error) {
	f, err := readFraction(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// absolute units, in user units (px)
var unitFactors = map[string]float64{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
}

// parseLength parses a number with an optional absolute unit or a
// percentage of `percentOf`. A percentage is an error when `percentOf` is zero.
func parseLength(v string, percentOf float64) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		if percentOf == 0 {
			return 0, fmt.Errorf("percentage %q without reference length", v)
		}
		f, err := parseFloat(strings.TrimSuffix(v, "%"))
		return f * percentOf / 100, err
	}
	factor := 1.
	if len(v) > 2 {
		if fa, ok := unitFactors[strings.ToLower(v[len(v)-2:])]; ok {
			factor = fa
			v = v[:len(v)-2]
		}
	}
	f, err := parseFloat(v)
	return f * factor, err
}
