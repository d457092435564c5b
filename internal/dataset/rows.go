package dataset

import (
	"studentdash/internal/analytics"
)

// Row is one record as stored outside a CSV file. Nil pointers are absent
// values.
type Row struct {
	Activity       *string
	GPA            float64
	WellBeing      float64
	IntensityLevel *string
}

// FromRows prepares a dataset from stored rows with the same rules as
// LoadCSV: absent activities are filled and absent intensity levels derived.
func FromRows(rows []Row, source string) *Dataset {
	records := make([]analytics.Record, len(rows))
	derived := 0
	for i, row := range rows {
		activity := analytics.UnknownActivity
		if row.Activity != nil {
			activity = *row.Activity
		}

		level := ""
		if row.IntensityLevel != nil {
			level = *row.IntensityLevel
		} else {
			level = analytics.DeriveIntensity(activity)
			derived++
		}

		records[i] = analytics.Record{
			Activity:       activity,
			GPA:            row.GPA,
			WellBeing:      row.WellBeing,
			IntensityLevel: level,
		}
	}

	columns := append([]string(nil), RequiredColumns...)
	if derived < len(rows) {
		columns = append(columns, analytics.ColumnIntensity)
	}
	return newDataset(source, columns, records, len(rows) > 0 && derived == len(rows))
}

// ToRows converts records back to storable rows.
func ToRows(records []analytics.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		activity, level := r.Activity, r.IntensityLevel
		rows[i] = Row{
			Activity:       &activity,
			GPA:            r.GPA,
			WellBeing:      r.WellBeing,
			IntensityLevel: &level,
		}
	}
	return rows
}
