package importer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rowsProcessed tracks row outcomes by result (imported or a reason code).
	rowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_import_rows_total",
		Help: "Total number of processed import rows by outcome",
	}, []string{"outcome"})

	// rowDuration tracks the time taken to reconcile and persist one row.
	rowDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_import_row_duration_seconds",
		Help:    "Time taken to import one row",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	// batchesCompleted tracks finished batches by status.
	batchesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_import_batches_total",
		Help: "Total number of import batches by status",
	}, []string{"status"})

	// batchDuration tracks the time taken for a whole batch.
	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_import_batch_duration_seconds",
		Help:    "Time taken to import one batch",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

const outcomeImported = "imported"

// MetricsRecorder provides methods to record import metrics
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordRow records the outcome of one row. A nil err means imported.
func (m *MetricsRecorder) RecordRow(err *RowError, duration time.Duration) {
	outcome := outcomeImported
	if err != nil {
		outcome = string(err.Reason)
	}
	rowsProcessed.WithLabelValues(outcome).Inc()
	rowDuration.Observe(duration.Seconds())
}

// RecordBatch records a finished batch
func (m *MetricsRecorder) RecordBatch(status string, duration time.Duration) {
	batchesCompleted.WithLabelValues(status).Inc()
	batchDuration.Observe(duration.Seconds())
}
