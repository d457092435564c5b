// Package charts renders the dashboard aggregates as SVG with go-chart.
package charts

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"studentdash/internal/analytics"
)

// Chart identifiers, used in URLs and in dashboard.yaml.
const (
	AvgGPA       = "avg-gpa"
	GPAShare     = "gpa-share"
	WellBeingBox = "wellbeing-box"
	GPABox       = "gpa-box"
	AvgWellBeing = "avg-wellbeing"
	ScatterPlot  = "scatter"
)

// IDs lists every chart in page order.
var IDs = []string{AvgGPA, GPAShare, WellBeingBox, GPABox, AvgWellBeing, ScatterPlot}

var (
	ErrUnknownChart  = errors.New("unknown chart")
	ErrNothingToDraw = errors.New("nothing to draw")
)

// defaultColors is the fallback series palette.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Options controls size, title and colors of one chart.
type Options struct {
	Width   int
	Height  int
	Title   string
	Palette []string
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 420
	}
	return w, h
}

func (o Options) color(i int) drawing.Color {
	palette := o.Palette
	if len(palette) == 0 {
		palette = defaultColors
	}
	return drawing.ColorFromHex(strings.TrimPrefix(palette[i%len(palette)], "#"))
}

// DefaultTitle returns the built-in title of a chart.
func DefaultTitle(id string) string {
	switch id {
	case AvgGPA:
		return "Average GPA by Activity"
	case GPAShare:
		return "GPA Share by Activity"
	case WellBeingBox:
		return "Wellbeing Score by Intensity Level"
	case GPABox:
		return "GPA by Intensity Level"
	case AvgWellBeing:
		return "Average Wellbeing Score by Activity"
	case ScatterPlot:
		return "GPA vs Wellbeing with Trendline"
	default:
		return ""
	}
}

// Render draws the chart id for a computed dashboard.
func Render(w io.Writer, id string, d *analytics.Dashboard, opts Options) error {
	if opts.Title == "" {
		opts.Title = DefaultTitle(id)
	}

	switch id {
	case AvgGPA:
		return Bars(w, d.AvgGPA, "Average GPA", opts)
	case GPAShare:
		return Pie(w, d.GPAShare, opts)
	case WellBeingBox:
		return Boxes(w, d.WellBeingBoxes, "Well-being Score", opts)
	case GPABox:
		return Boxes(w, d.GPABoxes, "GPA", opts)
	case AvgWellBeing:
		return Bars(w, d.AvgWellBeing, "Average Well-being Score", opts)
	case ScatterPlot:
		return Scatter(w, d.Scatter, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
}

// Bars draws one bar per activity mean, in the given order.
func Bars(w io.Writer, means []analytics.CategoryMean, yLabel string, opts Options) error {
	if len(means) == 0 {
		return ErrNothingToDraw
	}
	width, height := opts.size()

	maxMean := 0.0
	bars := make([]chart.Value, 0, len(means))
	for i, m := range means {
		maxMean = math.Max(maxMean, m.Mean)
		c := opts.color(i)
		bars = append(bars, chart.Value{
			Label: m.Category,
			Value: m.Mean,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	if maxMean <= 0 {
		maxMean = 1
	}

	barWidth := (width - 120) / (len(means) * 2)
	if barWidth < 8 {
		barWidth = 8
	}

	graph := chart.BarChart{
		Title:      opts.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxMean * 1.15},
		},
		Bars: bars,
	}
	return graph.Render(chart.SVG, w)
}

// Pie draws the GPA share slices labelled with their percentage.
func Pie(w io.Writer, slices []analytics.ShareSlice, opts Options) error {
	if len(slices) == 0 {
		return ErrNothingToDraw
	}
	width, height := opts.size()

	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		c := opts.color(i)
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Category, s.Percent),
			Value: s.Percent,
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}

	graph := chart.PieChart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return graph.Render(chart.SVG, w)
}

// boxHalfWidth is half the drawn width of a box in x-axis units.
const boxHalfWidth = 0.3

// Boxes draws a box plot per intensity level at x = 1, 2, 3... Levels
// without data keep their slot on the axis and stay empty.
func Boxes(w io.Writer, boxes []analytics.Box, yLabel string, opts Options) error {
	width, height := opts.size()

	ticks := make([]chart.Tick, 0, len(boxes))
	var series []chart.Series
	lo, hi := math.Inf(1), math.Inf(-1)

	for i, b := range boxes {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: b.Level})
		if !b.HasData() {
			continue
		}

		c := opts.color(i)
		line := chart.Style{StrokeColor: c, StrokeWidth: 2}
		left, right := x-boxHalfWidth, x+boxHalfWidth

		series = append(series,
			segment(line, []float64{x, x}, []float64{b.LowerWhisker, b.Q1}),
			segment(line, []float64{x, x}, []float64{b.Q3, b.UpperWhisker}),
			segment(line,
				[]float64{left, right, right, left, left},
				[]float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1}),
			segment(chart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 2},
				[]float64{left, right}, []float64{b.Median, b.Median}),
		)

		if len(b.Outliers) > 0 {
			xs := make([]float64, len(b.Outliers))
			for j := range xs {
				xs[j] = x
			}
			series = append(series, chart.ContinuousSeries{
				Name:    b.Level + " outliers",
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: c},
				XValues: xs,
				YValues: b.Outliers,
			})
		}

		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}

	if len(series) == 0 {
		return ErrNothingToDraw
	}

	graph := chart.Chart{
		Title:      opts.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16}},
		Width:      width,
		Height:     height,
		XAxis: chart.XAxis{
			Name:  "Intensity Level",
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(boxes)) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: paddedRange(lo, hi),
		},
		Series: series,
	}
	return graph.Render(chart.SVG, w)
}

// Scatter draws every activity's points as dots and its trendline, when
// present, as a line in the same color.
func Scatter(w io.Writer, groups []analytics.ScatterGroup, opts Options) error {
	width, height := opts.size()

	var series []chart.Series
	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)

	for i, g := range groups {
		if len(g.Points) == 0 {
			continue
		}
		c := opts.color(i)

		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		for j, p := range g.Points {
			xs[j], ys[j] = p.GPA, p.WellBeing
			xlo, xhi = math.Min(xlo, p.GPA), math.Max(xhi, p.GPA)
			ylo, yhi = math.Min(ylo, p.WellBeing), math.Max(yhi, p.WellBeing)
		}

		series = append(series, chart.ContinuousSeries{
			Name:    g.Activity,
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4, DotColor: c},
			XValues: xs,
			YValues: ys,
		})

		if g.Trend != nil {
			y0, y1 := g.Trend.At(g.Trend.MinGPA), g.Trend.At(g.Trend.MaxGPA)
			ylo, yhi = math.Min(ylo, math.Min(y0, y1)), math.Max(yhi, math.Max(y0, y1))
			series = append(series, segment(chart.Style{StrokeColor: c, StrokeWidth: 2},
				[]float64{g.Trend.MinGPA, g.Trend.MaxGPA}, []float64{y0, y1}))
		}
	}

	if len(series) == 0 {
		return ErrNothingToDraw
	}

	graph := chart.Chart{
		Title:      opts.Title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16}},
		Width:      width,
		Height:     height,
		XAxis:      chart.XAxis{Name: "GPA", Range: paddedRange(xlo, xhi)},
		YAxis:      chart.YAxis{Name: "Well-being", Range: paddedRange(ylo, yhi)},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.SVG, w)
}

// segment is an unnamed line; the legend skips series without a name.
func segment(style chart.Style, xs, ys []float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{Style: style, XValues: xs, YValues: ys}
}

// paddedRange widens [lo, hi] by 5% on each side so no axis range is empty.
func paddedRange(lo, hi float64) *chart.ContinuousRange {
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 0.5)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// Placeholder draws a blank chart-sized image carrying message.
func Placeholder(w io.Writer, message string, opts Options) error {
	width, height := opts.size()
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#F9FAFB" stroke="#E5E7EB"/>`+
		`<text x="50%%" y="40" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#111827">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#6B7280">%s</text>`+
		`</svg>`,
		width, height, width, height, html.EscapeString(opts.Title), html.EscapeString(message))
	return err
}
