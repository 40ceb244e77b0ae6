package validator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
)

// validatorMetrics holds Prometheus metrics for validation passes.
type validatorMetrics struct {
	// Validation counters
	validationsTotal *prometheus.CounterVec // By mode (strict, lenient)
	rowsValidated    *prometheus.CounterVec // By mode
	issuesTotal      *prometheus.CounterVec // By rule (required, type, schema)

	// Performance metrics
	validationDuration *prometheus.HistogramVec // By mode
}

// newValidatorMetrics creates and registers validator metrics with the provided registry.
func newValidatorMetrics(registry *metric.MetricsRegistry) (*validatorMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &validatorMetrics{
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "validator",
			Name:      "validations_total",
			Help:      "Total number of validation passes performed",
		}, []string{"mode"}),

		rowsValidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "validator",
			Name:      "rows_validated_total",
			Help:      "Total number of rows evaluated by validation rules",
		}, []string{"mode"}),

		issuesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "validator",
			Name:      "issues_total",
			Help:      "Total number of validation issues raised",
		}, []string{"rule"}), // rule: required, type, schema

		validationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: "validator",
			Name:      "validation_duration_seconds",
			Help:      "Validation pass duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"mode"}),
	}

	// Register all metrics
	if err := registry.RegisterCounterVec("validator", "validations_total", m.validationsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("validator", "rows_validated", m.rowsValidated); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("validator", "issues_total", m.issuesTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("validator", "validation_duration", m.validationDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// recordValidation records one completed validation pass.
func (m *validatorMetrics) recordValidation(mode string, rows int, issues []plugin.Issue, duration time.Duration) {
	if m == nil {
		return
	}

	m.validationsTotal.WithLabelValues(mode).Inc()
	m.rowsValidated.WithLabelValues(mode).Add(float64(rows))
	m.validationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	for _, issue := range issues {
		m.issuesTotal.WithLabelValues(issue.Rule).Inc()
	}
}
