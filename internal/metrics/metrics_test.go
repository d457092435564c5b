package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"studentdash/internal/analytics"
	"studentdash/internal/dataset"
)

func TestRecordView(t *testing.T) {
	before := testutil.ToFloat64(viewComputations.WithLabelValues(OutcomeNoData))

	RecordView(OutcomeNoData, 3*time.Millisecond)
	RecordView(OutcomeNoData, time.Millisecond)

	got := testutil.ToFloat64(viewComputations.WithLabelValues(OutcomeNoData))
	if got-before != 2 {
		t.Errorf("no_data views = %v, want %v", got, before+2)
	}
}

func TestRecordChart(t *testing.T) {
	before := testutil.ToFloat64(chartRenders.WithLabelValues("scatter", OutcomeOK))
	RecordChart("scatter", OutcomeOK)
	if got := testutil.ToFloat64(chartRenders.WithLabelValues("scatter", OutcomeOK)); got != before+1 {
		t.Errorf("scatter renders = %v, want %v", got, before+1)
	}
}

func TestDatasetCollector_NotLoaded(t *testing.T) {
	c := NewDatasetCollector(dataset.NewStore())
	if n := testutil.CollectAndCount(c); n != 0 {
		t.Errorf("CollectAndCount() = %d, want 0", n)
	}
}

func TestDatasetCollector(t *testing.T) {
	store := dataset.NewStore()
	ds := dataset.FromRows([]dataset.Row{
		{Activity: ptr("Chess Low"), GPA: 3.8, WellBeing: 8.1},
		{Activity: ptr("Chess Low"), GPA: 3.9, WellBeing: 9.0},
		{Activity: ptr("Sports High"), GPA: 3.0, WellBeing: 6.0},
	}, "test")
	if err := store.Init(ds); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	c := NewDatasetCollector(store)
	// two intensity levels plus the load timestamp
	if n := testutil.CollectAndCount(c); n != 3 {
		t.Errorf("CollectAndCount() = %d, want 3", n)
	}

	expected := `
# HELP studentdash_dataset_rows Number of student records in the loaded dataset by intensity level
# TYPE studentdash_dataset_rows gauge
studentdash_dataset_rows{intensity="` + analytics.IntensityHigh + `"} 1
studentdash_dataset_rows{intensity="` + analytics.IntensityLow + `"} 2
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "studentdash_dataset_rows"); err != nil {
		t.Error(err)
	}
}

func ptr(s string) *string { return &s }
