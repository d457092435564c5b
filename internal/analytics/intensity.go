package analytics

import "strings"

// Intensity levels, lowest first.
const (
	IntensityLow    = "Low"
	IntensityMedium = "Medium"
	IntensityHigh   = "High"
)

// IntensityOrder is the presentation order for anything grouped by
// intensity. It is not the lexical order of the labels.
var IntensityOrder = []string{IntensityLow, IntensityMedium, IntensityHigh}

// DeriveIntensity maps a free-text activity description to an intensity
// level. Matching is case-insensitive on substrings and "high" is checked
// before "low", so text containing both maps to High.
//
// An absent activity is expected to arrive as UnknownActivity, which
// contains neither keyword and maps to Medium like any other text.
func DeriveIntensity(activity string) string {
	text := strings.ToLower(activity)
	switch {
	case strings.Contains(text, "high"):
		return IntensityHigh
	case strings.Contains(text, "low"):
		return IntensityLow
	default:
		return IntensityMedium
	}
}

// WithIntensity returns a copy of records where every IntensityLevel is
// derived from Activity. The input slice is not modified.
func WithIntensity(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.IntensityLevel = DeriveIntensity(r.Activity)
		out[i] = r
	}
	return out
}
