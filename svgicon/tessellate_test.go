package svgicon

import (
	"math"
	"testing"

	"github.com/benoitkugler/svgreveal/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func subpath(t *testing.T, d string) svgpath.Subpath {
	t.Helper()
	subs := svgpath.SplitSubpaths(svgpath.MustParse(d))
	require.Len(t, subs, 1)
	return subs[0]
}

func TestTessellateLine(t *testing.T) {
	limits := NewRectLimits()
	de, ok, err := Tessellate(subpath(t, "M0 0 L10 0"), DefaultSettings, Identity, false, 1, limits)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 11, de.PointCount())
	assert.Equal(t, f64.Vec2{0, 0}, de.Points[0])
	assert.InDelta(t, 3, de.Points[3][0], 1e-9)
	assert.Equal(t, f64.Vec2{10, 0}, de.Points[10])
	assert.Equal(t, DefaultSettings, de.Settings)
	w, h := limits.ContentSize()
	assert.Equal(t, 10., w)
	assert.Equal(t, 0., h)
}

func TestTessellateStepCount(t *testing.T) {
	sub := subpath(t, "M0 0 L10 0")
	for _, test := range []struct {
		threshold float64
		points    int
	}{
		{0.5, 6},
		{0.25, 3}, // floor(2.5)
		{0.01, 2}, // at least one step
		{3, 31},   // above 1
	} {
		de, ok, err := Tessellate(sub, DefaultSettings, Identity, false, test.threshold, nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, test.points, de.PointCount(), test.threshold)
	}
}

func TestTessellateInvalidThreshold(t *testing.T) {
	sub := subpath(t, "M0 0 L10 0")
	for _, threshold := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, _, err := Tessellate(sub, DefaultSettings, Identity, false, threshold, nil)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	}
}

func TestTessellateDegenerate(t *testing.T) {
	limits := NewRectLimits()
	for _, d := range []string{"M5 5", "M5 5 L5 5", "M5 5 A5 5 0 0 1 5 5"} {
		_, ok, err := Tessellate(subpath(t, d), DefaultSettings, Identity, true, 1, limits)
		assert.NoError(t, err)
		assert.False(t, ok, d)
	}
	assert.True(t, limits.IsEmpty())
}

func TestTessellateClose(t *testing.T) {
	sub := subpath(t, "M0 0 h10 v10 h-10")
	de, ok, err := Tessellate(sub, DefaultSettings, Identity, true, 1, nil)
	require.NoError(t, err)
	require.True(t, ok)
	// 40 steps, plus the repeated start
	assert.Equal(t, 42, de.PointCount())
	assert.Equal(t, de.Points[0], de.Points[41])
	assert.Equal(t, f64.Vec2{0, -5}, de.Points[35])
	// the input is not modified
	assert.False(t, sub.Closed())

	// already closed: no extra Z
	de, _, _ = Tessellate(subpath(t, "M0 0 h10 v10 h-10 z"), DefaultSettings, Identity, true, 1, nil)
	assert.Equal(t, 42, de.PointCount())

	// open outline
	de, _, _ = Tessellate(sub, DefaultSettings, Identity, false, 1, nil)
	assert.Equal(t, 31, de.PointCount())
}

func TestTessellateTransform(t *testing.T) {
	limits := NewRectLimits()
	m := Identity.Translate(1, 2).Scale(2, 2)
	de, _, err := Tessellate(subpath(t, "M0 0 L0 5"), DefaultSettings, m, false, 1, limits)
	require.NoError(t, err)
	require.Equal(t, 6, de.PointCount())
	// transformed, then reflected
	assert.Equal(t, f64.Vec2{1, -2}, de.Points[0])
	assert.Equal(t, f64.Vec2{1, -12}, de.Points[5])
	assert.Equal(t, Bounds{X: 1, Y: -12, W: 0, H: 10}, limits.Bounds())
}

func TestRectLimits(t *testing.T) {
	r := NewRectLimits()
	w, h := r.ContentSize()
	assert.Equal(t, 0., w)
	assert.Equal(t, 0., h)
	ax, ay := r.Anchor()
	assert.Equal(t, 0.5, ax)
	assert.Equal(t, 0.5, ay)

	for _, p := range []f64.Vec2{{0, 0}, {10, 10}, {20, 5}, {30, 15}} {
		r.ProcessPoint(p)
	}
	w, h = r.ContentSize()
	assert.Equal(t, 30., w)
	assert.Equal(t, 15., h)
	ax, ay = r.Anchor()
	assert.Equal(t, 0., ax)
	assert.Equal(t, 0., ay)

	r = NewRectLimits()
	r.ProcessPoint(f64.Vec2{10, 10})
	r.ProcessPoint(f64.Vec2{30, 20})
	ax, ay = r.Anchor()
	assert.Equal(t, -0.5, ax)
	assert.Equal(t, -1., ay)
}
