package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"studentdash/internal/analytics"
)

// nanValues are the cell contents treated as absent.
var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// LoadCSVFile reads a dataset from a CSV file on disk.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return LoadCSV(f, path)
}

// LoadCSV parses a headed CSV table. Absent activities become
// analytics.UnknownActivity and Intensity_Level is derived when the table
// does not already carry it.
func LoadCSV(r io.Reader, source string) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			analytics.ColumnGPA:       series.Float,
			analytics.ColumnWellBeing: series.Float,
		}),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	columns := df.Names()
	for _, col := range RequiredColumns {
		if !containsString(columns, col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	df = FillActivity(df)
	df, derived := EnsureIntensityColumn(df)
	if df.Err != nil {
		return nil, fmt.Errorf("prepare dataset: %w", df.Err)
	}

	return newDataset(source, columns, toRecords(df), derived), nil
}

// FillActivity replaces absent Activity cells with the unknown placeholder.
func FillActivity(df dataframe.DataFrame) dataframe.DataFrame {
	col := df.Col(analytics.ColumnActivity)
	values := make([]string, col.Len())
	for i := range values {
		elem := col.Elem(i)
		values[i] = analytics.FillActivity(elem.String(), !elem.IsNA())
	}
	return df.Mutate(series.New(values, series.String, analytics.ColumnActivity))
}

// EnsureIntensityColumn attaches Intensity_Level derived from Activity when
// the frame does not have it yet. An existing column is kept, with only its
// absent cells derived. The second result reports whether the column was
// created. Calling it again on its own output changes nothing.
func EnsureIntensityColumn(df dataframe.DataFrame) (dataframe.DataFrame, bool) {
	activity := df.Col(analytics.ColumnActivity)
	values := make([]string, activity.Len())

	if !containsString(df.Names(), analytics.ColumnIntensity) {
		for i := range values {
			values[i] = analytics.DeriveIntensity(activity.Elem(i).String())
		}
		return df.Mutate(series.New(values, series.String, analytics.ColumnIntensity)), true
	}

	existing := df.Col(analytics.ColumnIntensity)
	complete := true
	for i := range values {
		elem := existing.Elem(i)
		if elem.IsNA() {
			values[i] = analytics.DeriveIntensity(activity.Elem(i).String())
			complete = false
			continue
		}
		values[i] = elem.String()
	}
	if complete {
		return df, false
	}
	return df.Mutate(series.New(values, series.String, analytics.ColumnIntensity)), false
}

func toRecords(df dataframe.DataFrame) []analytics.Record {
	activity := df.Col(analytics.ColumnActivity)
	intensity := df.Col(analytics.ColumnIntensity)
	gpa := df.Col(analytics.ColumnGPA).Float()
	wellBeing := df.Col(analytics.ColumnWellBeing).Float()

	records := make([]analytics.Record, df.Nrow())
	for i := range records {
		records[i] = analytics.Record{
			Activity:       activity.Elem(i).String(),
			GPA:            gpa[i],
			WellBeing:      wellBeing[i],
			IntensityLevel: intensity.Elem(i).String(),
		}
	}
	return records
}
