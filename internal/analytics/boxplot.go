package analytics

import (
	"math"
	"sort"
)

// Box summarises the distribution of one measure within one intensity level.
// A Box with Count zero carries no statistics.
type Box struct {
	Level        string    `json:"level"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// HasData reports whether the box was computed from at least one value.
func (b Box) HasData() bool { return b.Count > 0 }

// whiskerIQR is the whisker reach in multiples of the interquartile range.
const whiskerIQR = 1.5

// DistributionByIntensity returns one Box per level of IntensityOrder, in
// that order, regardless of the order rows arrive in. Labels outside
// IntensityOrder are not plotted.
func DistributionByIntensity(records []Record, measure func(Record) float64) []Box {
	grouped := make(map[string][]float64, len(IntensityOrder))
	for _, r := range records {
		v := measure(r)
		if math.IsNaN(v) {
			continue
		}
		grouped[r.IntensityLevel] = append(grouped[r.IntensityLevel], v)
	}

	boxes := make([]Box, 0, len(IntensityOrder))
	for _, level := range IntensityOrder {
		boxes = append(boxes, newBox(level, grouped[level]))
	}
	return boxes
}

// WellBeingByIntensity is DistributionByIntensity over well-being scores.
func WellBeingByIntensity(records []Record) []Box {
	return DistributionByIntensity(records, wellBeingOf)
}

// GPAByIntensity is DistributionByIntensity over GPA.
func GPAByIntensity(records []Record) []Box {
	return DistributionByIntensity(records, gpaOf)
}

func newBox(level string, values []float64) Box {
	box := Box{Level: level, Count: len(values)}
	if len(values) == 0 {
		return box
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	box.Min = sorted[0]
	box.Max = sorted[len(sorted)-1]
	box.Q1 = quantile(sorted, 0.25)
	box.Median = quantile(sorted, 0.5)
	box.Q3 = quantile(sorted, 0.75)

	reach := whiskerIQR * (box.Q3 - box.Q1)
	lowLimit, highLimit := box.Q1-reach, box.Q3+reach

	box.LowerWhisker = box.Q1
	box.UpperWhisker = box.Q3
	for _, v := range sorted {
		if v >= lowLimit {
			box.LowerWhisker = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highLimit {
			box.UpperWhisker = sorted[i]
			break
		}
	}
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			box.Outliers = append(box.Outliers, v)
		}
	}
	return box
}

// quantile interpolates linearly between the two closest ranks of sorted
// data (the numpy "linear" method).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
