package converter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/healthdcat/metric"
)

// converterMetrics holds Prometheus metrics for whole conversion runs.
type converterMetrics struct {
	// Conversion counters
	conversionsTotal *prometheus.CounterVec // By outcome
	rowsConverted    *prometheus.CounterVec // Rows reaching the generator
	issuesReported   *prometheus.CounterVec // Validation issues on results

	// Stage counters
	stagesTotal *prometheus.CounterVec // By stage and status

	// Performance metrics
	conversionDuration *prometheus.HistogramVec // By outcome
	stageDuration      *prometheus.HistogramVec // By stage
}

// newConverterMetrics creates and registers converter metrics with the provided registry.
func newConverterMetrics(registry *metric.MetricsRegistry) (*converterMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &converterMetrics{
		conversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "conversions_total",
			Help:      "Total number of conversion runs by outcome",
		}, []string{"outcome"}), // outcome: success, rejected, read_error, validation_failed, transform_failed, generation_failed

		rowsConverted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "rows_converted_total",
			Help:      "Total number of rows that reached the generator",
		}, []string{}),

		issuesReported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "issues_reported_total",
			Help:      "Total number of validation issues carried on results",
		}, []string{}),

		stagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "stages_total",
			Help:      "Total number of stage executions by status",
		}, []string{"stage", "status"}), // status: ok, error

		conversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion run duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"outcome"}),

		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: "converter",
			Name:      "stage_duration_seconds",
			Help:      "Stage execution duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"stage"}),
	}

	// Register all metrics
	if err := registry.RegisterCounterVec("converter", "conversions_total", m.conversionsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("converter", "rows_converted", m.rowsConverted); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("converter", "issues_reported", m.issuesReported); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("converter", "stages_total", m.stagesTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("converter", "conversion_duration", m.conversionDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("converter", "stage_duration", m.stageDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// recordConversion records one finished conversion run.
func (m *converterMetrics) recordConversion(outcome string, duration time.Duration) {
	if m == nil {
		return
	}

	m.conversionsTotal.WithLabelValues(outcome).Inc()
	m.conversionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// recordRows records row and issue counts of a successful run.
func (m *converterMetrics) recordRows(rows, issues int) {
	if m == nil {
		return
	}

	m.rowsConverted.WithLabelValues().Add(float64(rows))
	if issues > 0 {
		m.issuesReported.WithLabelValues().Add(float64(issues))
	}
}

// recordStage records one stage execution.
func (m *converterMetrics) recordStage(stage string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}

	status := "ok"
	if !ok {
		status = "error"
	}
	m.stagesTotal.WithLabelValues(stage, status).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
