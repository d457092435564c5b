package analytics

import (
	"encoding/json"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// NotAvailable is how an undefined statistic is displayed.
const NotAvailable = "n/a"

// Stat is a statistic that may be undefined for the data it was computed on.
type Stat struct {
	Value float64
	Valid bool
}

// Format renders the value with the given number of decimals, or
// NotAvailable.
func (s Stat) Format(decimals int) string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(s.Value, 'f', decimals, 64)
}

// String renders the value with two decimals.
func (s Stat) String() string { return s.Format(2) }

// MarshalJSON encodes an undefined statistic as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Correlation returns the Pearson coefficient between GPA and well-being.
// Rows with a NaN in either measure are ignored. The result is undefined
// for fewer than two rows or when either series is constant.
func Correlation(records []Record) Stat {
	x, y := pairs(records)
	if len(x) < 2 {
		return Stat{}
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return Stat{}
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Stat{}
	}
	return Stat{Value: r, Valid: true}
}

// pairs returns the GPA and well-being series with incomplete rows removed.
func pairs(records []Record) (gpa, wellBeing []float64) {
	gpa = make([]float64, 0, len(records))
	wellBeing = make([]float64, 0, len(records))
	for _, r := range records {
		if math.IsNaN(r.GPA) || math.IsNaN(r.WellBeing) {
			continue
		}
		gpa = append(gpa, r.GPA)
		wellBeing = append(wellBeing, r.WellBeing)
	}
	return gpa, wellBeing
}
