package metrics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"studentdash/internal/dataset"
)

// View outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeNoData  = "no_data"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	datasetRowsDesc = prometheus.NewDesc(
		"studentdash_dataset_rows",
		"Number of student records in the loaded dataset by intensity level",
		[]string{"intensity"},
		nil,
	)
	datasetLoadedDesc = prometheus.NewDesc(
		"studentdash_dataset_loaded_timestamp_seconds",
		"Unix time the dataset was loaded",
		[]string{"source"},
		nil,
	)
)

var (
	viewComputations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studentdash_view_computations_total",
		Help: "Total dashboard view computations by outcome",
	}, []string{"outcome"})

	viewDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "studentdash_view_duration_seconds",
		Help:    "Time spent filtering and aggregating one view",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	chartRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studentdash_chart_renders_total",
		Help: "Total chart renders by chart and outcome",
	}, []string{"chart", "outcome"})
)

// DatasetCollector is a custom Prometheus collector that reads the loaded
// dataset on each scrape.
type DatasetCollector struct {
	store *dataset.Store
}

// NewDatasetCollector returns a collector for the dataset held by store.
func NewDatasetCollector(store *dataset.Store) *DatasetCollector {
	return &DatasetCollector{store: store}
}

// Describe sends the metric descriptors to the channel.
func (c *DatasetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- datasetRowsDesc
	ch <- datasetLoadedDesc
}

// Collect emits the row counts of the current dataset. Nothing is emitted
// before the dataset is loaded.
func (c *DatasetCollector) Collect(ch chan<- prometheus.Metric) {
	ds, err := c.store.Get()
	if err != nil {
		slog.Debug("dataset metrics skipped", "error", err)
		return
	}
	for level, count := range ds.CountByIntensity() {
		ch <- prometheus.MustNewConstMetric(
			datasetRowsDesc,
			prometheus.GaugeValue,
			float64(count),
			level,
		)
	}
	ch <- prometheus.MustNewConstMetric(
		datasetLoadedDesc,
		prometheus.GaugeValue,
		float64(ds.LoadedAt.Unix()),
		ds.Source,
	)
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(store *dataset.Store) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			NewDatasetCollector(store),
			viewComputations,
			viewDuration,
			chartRenders,
		)
	})
}

// RecordView counts one view computation and how long it took.
func RecordView(outcome string, elapsed time.Duration) {
	viewComputations.WithLabelValues(outcome).Inc()
	viewDuration.Observe(elapsed.Seconds())
}

// RecordChart counts one chart render.
func RecordChart(chart, outcome string) {
	chartRenders.WithLabelValues(chart, outcome).Inc()
}
