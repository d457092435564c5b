package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantValid bool
		want      string
	}{
		{
			name: "perfectly linear",
			records: []Record{
				{GPA: 3.0, WellBeing: 5},
				{GPA: 3.5, WellBeing: 6},
				{GPA: 4.0, WellBeing: 7},
			},
			wantValid: true,
			want:      "1.00",
		},
		{
			name: "perfectly inverse",
			records: []Record{
				{GPA: 3.0, WellBeing: 7},
				{GPA: 3.5, WellBeing: 6},
				{GPA: 4.0, WellBeing: 5},
			},
			wantValid: true,
			want:      "-1.00",
		},
		{
			name:    "single record",
			records: []Record{{GPA: 3.0, WellBeing: 5}},
			want:    NotAvailable,
		},
		{
			name:    "no records",
			records: nil,
			want:    NotAvailable,
		},
		{
			name: "constant gpa",
			records: []Record{
				{GPA: 3.0, WellBeing: 5},
				{GPA: 3.0, WellBeing: 6},
			},
			want: NotAvailable,
		},
		{
			name: "constant well-being",
			records: []Record{
				{GPA: 3.0, WellBeing: 5},
				{GPA: 3.5, WellBeing: 5},
			},
			want: NotAvailable,
		},
		{
			name: "nan rows dropped",
			records: []Record{
				{GPA: 3.0, WellBeing: 5},
				{GPA: math.NaN(), WellBeing: 1},
				{GPA: 4.0, WellBeing: 7},
			},
			wantValid: true,
			want:      "1.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correlation(tt.records)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestStat_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Stat `json:"a"`
		B Stat `json:"b"`
	}{A: Stat{Value: 0.5, Valid: true}, B: Stat{}})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.5,"b":null}`, string(b))
}

func TestStat_Format(t *testing.T) {
	assert.Equal(t, "0.123", Stat{Value: 0.1234, Valid: true}.Format(3))
	assert.Equal(t, NotAvailable, Stat{Value: 0, Valid: false}.Format(3))
}
