package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrFitUnavailable is returned when no trendline fitter is configured.
	ErrFitUnavailable = errors.New("trendline fitting is unavailable")

	// ErrInsufficientData is returned by a Fitter that cannot fit the points.
	ErrInsufficientData = errors.New("not enough distinct points to fit a trendline")
)

// Point is one student on the GPA / well-being scatter.
type Point struct {
	GPA       float64 `json:"gpa"`
	WellBeing float64 `json:"well_being"`
}

// Trendline is a fitted line WellBeing = Intercept + Slope*GPA, drawn over
// [MinGPA, MaxGPA].
type Trendline struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	RSquared  float64 `json:"r_squared"`
	MinGPA    float64 `json:"min_gpa"`
	MaxGPA    float64 `json:"max_gpa"`
}

// At evaluates the line at gpa.
func (t Trendline) At(gpa float64) float64 {
	return t.Intercept + t.Slope*gpa
}

// Fitter fits a trendline of well-being on GPA.
type Fitter interface {
	Fit(gpa, wellBeing []float64) (Trendline, error)
}

// OLSFitter fits by ordinary least squares.
type OLSFitter struct{}

// Fit implements Fitter.
func (OLSFitter) Fit(gpa, wellBeing []float64) (Trendline, error) {
	if len(gpa) != len(wellBeing) {
		return Trendline{}, fmt.Errorf("fit: %d x values for %d y values", len(gpa), len(wellBeing))
	}
	if len(gpa) < 2 || stat.Variance(gpa, nil) == 0 {
		return Trendline{}, ErrInsufficientData
	}

	alpha, beta := stat.LinearRegression(gpa, wellBeing, nil, false)
	r2 := stat.RSquared(gpa, wellBeing, nil, alpha, beta)
	if math.IsNaN(r2) {
		// constant y: the line is exact
		r2 = 1
	}

	minX, maxX := gpa[0], gpa[0]
	for _, x := range gpa[1:] {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}

	return Trendline{
		Intercept: alpha,
		Slope:     beta,
		RSquared:  r2,
		MinGPA:    minX,
		MaxGPA:    maxX,
	}, nil
}

// ScatterGroup holds one activity's points and its trendline, if any.
type ScatterGroup struct {
	Activity string     `json:"activity"`
	Points   []Point    `json:"points"`
	Trend    *Trendline `json:"trend,omitempty"`
}

// Scatter groups the records by activity (sorted by name) and fits a
// trendline per group. Groups the fitter rejects keep their points and get
// no line. With a nil fitter every group is returned without a line along
// with ErrFitUnavailable.
func Scatter(records []Record, fitter Fitter) ([]ScatterGroup, error) {
	grouped := make(map[string][]Point)
	for _, r := range records {
		if math.IsNaN(r.GPA) || math.IsNaN(r.WellBeing) {
			continue
		}
		grouped[r.Activity] = append(grouped[r.Activity], Point{GPA: r.GPA, WellBeing: r.WellBeing})
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]ScatterGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, ScatterGroup{Activity: k, Points: grouped[k]})
	}

	if fitter == nil {
		return groups, ErrFitUnavailable
	}

	for i := range groups {
		x := make([]float64, len(groups[i].Points))
		y := make([]float64, len(groups[i].Points))
		for j, p := range groups[i].Points {
			x[j], y[j] = p.GPA, p.WellBeing
		}

		trend, err := fitter.Fit(x, y)
		if err != nil {
			continue
		}
		groups[i].Trend = &trend
	}
	return groups, nil
}
