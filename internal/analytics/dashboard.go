package analytics

import (
	"errors"
)

// ErrNoData is returned when a selection leaves no rows to aggregate.
var ErrNoData = errors.New("no data matches the selected filters")

// Notice messages shown next to the affected part of the view.
const (
	NoticeNoData      = "No data matches the selected filters. Please adjust your selection."
	NoticeNoTrendline = "Trendlines are unavailable, so the scatter is shown without a fitted line."
)

// DefaultTopN is how many activities the best well-being table lists.
const DefaultTopN = 3

// Options tunes Build.
type Options struct {
	// TopN defaults to DefaultTopN when zero.
	TopN int
	// Fitter draws trendlines. Nil disables them.
	Fitter Fitter
}

// Dashboard is every aggregate of one filtered view, ready to render.
type Dashboard struct {
	Selection Selection `json:"selection"`
	RowCount  int       `json:"row_count"`

	AvgGPA   []CategoryMean `json:"avg_gpa"`
	GPAShare []ShareSlice   `json:"gpa_share"`

	WellBeingBoxes []Box `json:"well_being_boxes"`
	GPABoxes       []Box `json:"gpa_boxes"`

	AvgWellBeing []CategoryMean `json:"avg_well_being"`
	TopWellBeing []CategoryMean `json:"top_well_being"`

	Correlation     Stat           `json:"correlation"`
	Scatter         []ScatterGroup `json:"scatter"`
	TrendlineNotice string         `json:"trendline_notice,omitempty"`
}

// Build filters records by sel and computes the full view. It returns
// ErrNoData, and no view, when nothing matches.
func Build(records []Record, sel Selection, opts Options) (*Dashboard, error) {
	filtered := Filter(records, sel)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	topN := opts.TopN
	if topN == 0 {
		topN = DefaultTopN
	}

	avgGPA := MeanGPAByActivity(filtered)
	avgWellBeing := MeanWellBeingByActivity(filtered)

	d := &Dashboard{
		Selection:      sel,
		RowCount:       len(filtered),
		AvgGPA:         avgGPA,
		GPAShare:       Shares(avgGPA),
		WellBeingBoxes: WellBeingByIntensity(filtered),
		GPABoxes:       GPAByIntensity(filtered),
		AvgWellBeing:   avgWellBeing,
		TopWellBeing:   Top(avgWellBeing, topN),
		Correlation:    Correlation(filtered),
	}

	scatter, err := Scatter(filtered, opts.Fitter)
	if errors.Is(err, ErrFitUnavailable) {
		d.TrendlineNotice = NoticeNoTrendline
	}
	d.Scatter = scatter

	return d, nil
}
