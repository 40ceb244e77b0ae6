package transform

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/healthdcat/metric"
)

// transformMetrics holds Prometheus metrics shared by the transform stages.
type transformMetrics struct {
	// Transformation counters
	transformsTotal *prometheus.CounterVec // By stage
	rowsProcessed   *prometheus.CounterVec // By stage
	rowsFiltered    *prometheus.CounterVec // By stage

	// Field operation counters
	fieldsAdded   *prometheus.CounterVec // By stage
	fieldsRemoved *prometheus.CounterVec // By stage
	fieldsMapped  *prometheus.CounterVec // By stage

	// Performance metrics
	transformDuration *prometheus.HistogramVec // By stage
}

// newTransformMetrics creates and registers transform metrics with the
// provided registry. Each stage registers under its own subsystem so the two
// transform stages can coexist on one registry.
func newTransformMetrics(registry *metric.MetricsRegistry, stage string) (*transformMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &transformMetrics{
		transformsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "transforms_total",
			Help:      "Total number of transform stage executions",
		}, []string{"stage"}),

		rowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "rows_processed_total",
			Help:      "Total number of rows emitted by transform stages",
		}, []string{"stage"}),

		rowsFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "rows_filtered_total",
			Help:      "Total number of rows dropped by filtering",
		}, []string{"stage"}),

		fieldsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "fields_added_total",
			Help:      "Total number of field values added to rows",
		}, []string{"stage"}),

		fieldsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "fields_removed_total",
			Help:      "Total number of field values removed from rows",
		}, []string{"stage"}),

		fieldsMapped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "fields_mapped_total",
			Help:      "Total number of field values mapped or renamed",
		}, []string{"stage"}),

		transformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: stage,
			Name:      "transform_duration_seconds",
			Help:      "Transform stage duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"stage"}),
	}

	// Register all metrics
	if err := registry.RegisterCounterVec(stage, "transforms_total", m.transformsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(stage, "rows_processed", m.rowsProcessed); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(stage, "rows_filtered", m.rowsFiltered); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(stage, "fields_added", m.fieldsAdded); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(stage, "fields_removed", m.fieldsRemoved); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(stage, "fields_mapped", m.fieldsMapped); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec(stage, "transform_duration", m.transformDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// recordTransform records one completed stage execution.
func (m *transformMetrics) recordTransform(stage string, rows int, duration time.Duration) {
	if m == nil {
		return
	}

	m.transformsTotal.WithLabelValues(stage).Inc()
	m.rowsProcessed.WithLabelValues(stage).Add(float64(rows))
	m.transformDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// recordRowsFiltered records rows dropped by a filter predicate.
func (m *transformMetrics) recordRowsFiltered(stage string, dropped int) {
	if m == nil {
		return
	}

	if dropped > 0 {
		m.rowsFiltered.WithLabelValues(stage).Add(float64(dropped))
	}
}

// recordFieldOperations records field add/remove/map operations.
func (m *transformMetrics) recordFieldOperations(stage string, added, removed, mapped int) {
	if m == nil {
		return
	}

	if added > 0 {
		m.fieldsAdded.WithLabelValues(stage).Add(float64(added))
	}
	if removed > 0 {
		m.fieldsRemoved.WithLabelValues(stage).Add(float64(removed))
	}
	if mapped > 0 {
		m.fieldsMapped.WithLabelValues(stage).Add(float64(mapped))
	}
}
