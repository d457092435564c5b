// Package dataset loads the student activity table once per process and
// serves it read-only to the dashboard.
package dataset

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"studentdash/internal/analytics"
)

var (
	ErrMissingColumn = errors.New("dataset is missing a required column")
	ErrNotLoaded     = errors.New("dataset has not been loaded")
	ErrAlreadyLoaded = errors.New("dataset is already loaded")
)

// RequiredColumns must be present in every source.
var RequiredColumns = []string{analytics.ColumnActivity, analytics.ColumnGPA, analytics.ColumnWellBeing}

// Dataset is an immutable, fully prepared snapshot of the source table.
type Dataset struct {
	// ID changes on every load and doubles as a cache validator.
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Columns  []string
	Records  []analytics.Record

	// IntensityDerived is true when Intensity_Level was computed at load
	// time rather than read from the source.
	IntensityDerived bool
}

// Options lists the values each filter can take and the initial selection.
type Options struct {
	Activities  []string            `json:"activities"`
	Intensities []string            `json:"intensities"`
	Default     analytics.Selection `json:"default"`
}

func newDataset(source string, columns []string, records []analytics.Record, derived bool) *Dataset {
	return &Dataset{
		ID:               uuid.New(),
		Source:           source,
		LoadedAt:         time.Now().UTC(),
		Columns:          columns,
		Records:          records,
		IntensityDerived: derived,
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Options returns the filter choices in order of first appearance. The
// default selection leaves out the excluded activities.
func (d *Dataset) Options(excluded []string) Options {
	return Options{
		Activities:  analytics.UniqueActivities(d.Records),
		Intensities: analytics.UniqueIntensities(d.Records),
		Default:     analytics.DefaultSelection(d.Records, excluded),
	}
}

// CountByIntensity returns how many records carry each intensity label.
func (d *Dataset) CountByIntensity() map[string]int {
	counts := make(map[string]int)
	for _, r := range d.Records {
		counts[r.IntensityLevel]++
	}
	return counts
}

// HasColumn reports whether the source carried the named column.
func (d *Dataset) HasColumn(name string) bool {
	return containsString(d.Columns, name)
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
