// Package analytics derives the intensity feature, narrows the dataset to a
// filter selection and computes the aggregates shown on the dashboard.
//
// Everything in this package is a pure function of its inputs. Records are
// never mutated; every call recomputes from the slice it is given.
package analytics

// Column names as they appear in the source dataset.
const (
	ColumnActivity  = "Activity"
	ColumnGPA       = "GPA"
	ColumnWellBeing = "Well-being"
	ColumnIntensity = "Intensity_Level"
)

// UnknownActivity replaces absent Activity values.
const UnknownActivity = "unknown"

// Record is one student observation.
type Record struct {
	Activity       string  `json:"activity"`
	GPA            float64 `json:"gpa"`
	WellBeing      float64 `json:"well_being"`
	IntensityLevel string  `json:"intensity_level"`
}

// FillActivity returns the activity label for a possibly absent value.
func FillActivity(value string, present bool) string {
	if !present {
		return UnknownActivity
	}
	return value
}

func gpaOf(r Record) float64       { return r.GPA }
func wellBeingOf(r Record) float64 { return r.WellBeing }
