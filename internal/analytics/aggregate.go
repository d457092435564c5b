package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CategoryMean is the mean of one measure for one activity.
type CategoryMean struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	Count    int     `json:"count"`
}

// ShareSlice is one activity's slice of the GPA share chart.
type ShareSlice struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
	Percent  float64 `json:"percent"`
}

// MeanByActivity averages a measure per activity. Groups come back sorted by
// activity name; NaN values are skipped and a group left with no values is
// dropped.
func MeanByActivity(records []Record, measure func(Record) float64) []CategoryMean {
	grouped := make(map[string][]float64)
	for _, r := range records {
		v := measure(r)
		if math.IsNaN(v) {
			continue
		}
		grouped[r.Activity] = append(grouped[r.Activity], v)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	means := make([]CategoryMean, 0, len(keys))
	for _, k := range keys {
		values := grouped[k]
		means = append(means, CategoryMean{
			Category: k,
			Mean:     stat.Mean(values, nil),
			Count:    len(values),
		})
	}
	return means
}

// MeanGPAByActivity returns mean GPA per activity, lowest mean first.
func MeanGPAByActivity(records []Record) []CategoryMean {
	means := MeanByActivity(records, gpaOf)
	sort.SliceStable(means, func(i, j int) bool { return means[i].Mean < means[j].Mean })
	return means
}

// MeanWellBeingByActivity returns mean well-being per activity, highest
// mean first.
func MeanWellBeingByActivity(records []Record) []CategoryMean {
	means := MeanByActivity(records, wellBeingOf)
	sort.SliceStable(means, func(i, j int) bool { return means[i].Mean > means[j].Mean })
	return means
}

// Top returns the first n entries of an already ordered list.
func Top(means []CategoryMean, n int) []CategoryMean {
	if n < 0 {
		n = 0
	}
	if len(means) <= n {
		return means
	}
	return means[:n]
}

// Shares converts per-activity means into percentages of their sum.
// A non-positive sum yields no slices.
func Shares(means []CategoryMean) []ShareSlice {
	var total float64
	for _, m := range means {
		total += m.Mean
	}
	if total <= 0 {
		return []ShareSlice{}
	}

	slices := make([]ShareSlice, 0, len(means))
	for _, m := range means {
		slices = append(slices, ShareSlice{
			Category: m.Category,
			Mean:     m.Mean,
			Percent:  m.Mean / total * 100,
		})
	}
	return slices
}
