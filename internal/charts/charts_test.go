package charts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentdash/internal/analytics"
)

func sampleDashboard(t *testing.T) *analytics.Dashboard {
	t.Helper()
	records := analytics.WithIntensity([]analytics.Record{
		{Activity: "Sports High", GPA: 3.0, WellBeing: 6.0},
		{Activity: "Sports High", GPA: 3.4, WellBeing: 7.1},
		{Activity: "Chess Low", GPA: 3.8, WellBeing: 8.1},
		{Activity: "Chess Low", GPA: 3.9, WellBeing: 9.0},
		{Activity: "Music", GPA: 3.5, WellBeing: 7.9},
		{Activity: "Music", GPA: 3.2, WellBeing: 6.4},
	})
	sel := analytics.DefaultSelection(records, nil)
	d, err := analytics.Build(records, sel, analytics.Options{Fitter: analytics.OLSFitter{}})
	require.NoError(t, err)
	return d
}

func TestRenderAll(t *testing.T) {
	d := sampleDashboard(t)

	for _, id := range IDs {
		t.Run(id, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, id, d, Options{Width: 480, Height: 320})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRenderUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "histogram", sampleDashboard(t), Options{})
	assert.True(t, errors.Is(err, ErrUnknownChart))
}

func TestRenderUsesTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, AvgGPA, sampleDashboard(t), Options{Title: "Custom Heading"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Custom Heading")
}

func TestScatterLegendOnePerActivity(t *testing.T) {
	d := sampleDashboard(t)
	for _, g := range d.Scatter {
		require.NotNil(t, g.Trend, "activity %s", g.Activity)
	}

	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, d.Scatter, Options{}))
	svg := buf.String()

	for _, g := range d.Scatter {
		assert.Equal(t, 1, strings.Count(svg, ">"+g.Activity+"</text>"), "legend entries for %s", g.Activity)
	}
	assert.NotContains(t, svg, "trend")
}

func TestNothingToDraw(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, Bars(&buf, nil, "GPA", Options{}), ErrNothingToDraw)
	assert.ErrorIs(t, Pie(&buf, nil, Options{}), ErrNothingToDraw)
	assert.ErrorIs(t, Scatter(&buf, nil, Options{}), ErrNothingToDraw)

	empty := []analytics.Box{{Level: analytics.IntensityLow}, {Level: analytics.IntensityMedium}, {Level: analytics.IntensityHigh}}
	assert.ErrorIs(t, Boxes(&buf, empty, "GPA", Options{}), ErrNothingToDraw)
}

func TestBoxesSingleValue(t *testing.T) {
	boxes := analytics.GPAByIntensity(analytics.WithIntensity([]analytics.Record{
		{Activity: "Chess Low", GPA: 3.5, WellBeing: 7},
	}))

	var buf bytes.Buffer
	require.NoError(t, Boxes(&buf, boxes, "GPA", Options{}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange(2, 2)
	assert.Less(t, r.Min, 2.0)
	assert.Greater(t, r.Max, 2.0)

	r = paddedRange(0, 10)
	assert.InDelta(t, -0.5, r.Min, 1e-9)
	assert.InDelta(t, 10.5, r.Max, 1e-9)
}

func TestPaletteCycles(t *testing.T) {
	opts := Options{Palette: []string{"#FF0000", "00FF00"}}
	assert.Equal(t, opts.color(0), opts.color(2))
	assert.NotEqual(t, opts.color(0), opts.color(1))
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Placeholder(&buf, "No <data>", Options{Title: "GPA & more"}))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `width="640"`)
	assert.Contains(t, out, "No &lt;data&gt;")
	assert.Contains(t, out, "GPA &amp; more")
}
