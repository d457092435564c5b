package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	records := sampleRecords()
	sel := DefaultSelection(records, []string{UnknownActivity})

	d, err := Build(records, sel, Options{Fitter: OLSFitter{}})

	require.NoError(t, err)
	assert.Equal(t, 6, d.RowCount)
	assert.Len(t, d.AvgGPA, 3)
	assert.Len(t, d.GPAShare, 3)
	assert.Len(t, d.AvgWellBeing, 3)
	assert.Len(t, d.TopWellBeing, 3)
	assert.Len(t, d.WellBeingBoxes, 3)
	assert.Len(t, d.GPABoxes, 3)
	assert.True(t, d.Correlation.Valid)
	assert.Empty(t, d.TrendlineNotice)
	for _, g := range d.Scatter {
		assert.NotNil(t, g.Trend, g.Activity)
	}
}

func TestBuild_NoData(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name string
		sel  Selection
	}{
		{"empty activities", Selection{Intensities: IntensityOrder}},
		{"empty intensities", Selection{Activities: UniqueActivities(records)}},
		{"no overlap", Selection{Activities: []string{"Music"}, Intensities: []string{IntensityHigh}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(records, tt.sel, Options{})
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, d)
		})
	}
}

func TestBuild_SingleRow(t *testing.T) {
	records := sampleRecords()
	sel := Selection{Activities: []string{UnknownActivity}, Intensities: IntensityOrder}

	d, err := Build(records, sel, Options{Fitter: OLSFitter{}})

	require.NoError(t, err)
	assert.Equal(t, 1, d.RowCount)
	assert.False(t, d.Correlation.Valid)
	assert.Equal(t, NotAvailable, d.Correlation.String())
	assert.Len(t, d.TopWellBeing, 1)
}

func TestBuild_WithoutFitter(t *testing.T) {
	records := sampleRecords()

	d, err := Build(records, DefaultSelection(records, nil), Options{})

	require.NoError(t, err)
	assert.Equal(t, NoticeNoTrendline, d.TrendlineNotice)
	assert.NotEmpty(t, d.Scatter)
	assert.True(t, d.Correlation.Valid)
}

func TestBuild_TopN(t *testing.T) {
	records := sampleRecords()

	d, err := Build(records, DefaultSelection(records, nil), Options{TopN: 2})

	require.NoError(t, err)
	assert.Len(t, d.TopWellBeing, 2)
	assert.Len(t, d.AvgWellBeing, 4)
}
