package rdfgen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/healthdcat/metric"
)

// generatorMetrics holds Prometheus metrics for graph generation.
type generatorMetrics struct {
	// Generation counters
	generationsTotal *prometheus.CounterVec // By format
	triplesTotal     *prometheus.CounterVec // By format
	entitiesTotal    *prometheus.CounterVec // By entity_type

	// Operation errors
	errors *prometheus.CounterVec // By error_type

	// Performance metrics
	generationDuration *prometheus.HistogramVec // By format
	outputSize         *prometheus.HistogramVec // By format
}

// newGeneratorMetrics creates and registers generator metrics with the provided registry.
func newGeneratorMetrics(registry *metric.MetricsRegistry) (*generatorMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &generatorMetrics{
		generationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "generations_total",
			Help:      "Total number of graph generations performed",
		}, []string{"format"}),

		triplesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "triples_total",
			Help:      "Total number of triples generated",
		}, []string{"format"}),

		entitiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "entities_total",
			Help:      "Total number of entities generated",
		}, []string{"entity_type"}), // entity_type: dataset, distribution, agent, column

		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "errors_total",
			Help:      "Total number of generation errors",
		}, []string{"error_type"}), // error_type: unsupported_format, missing_dataset_uri, serialization

		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "generation_duration_seconds",
			Help:      "Graph generation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"format"}),

		outputSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthdcat",
			Subsystem: "rdf_generator",
			Name:      "output_size_bytes",
			Help:      "Distribution of serialized output sizes in bytes",
			Buckets:   prometheus.ExponentialBuckets(256, 2, 12), // 256B to ~1MB
		}, []string{"format"}),
	}

	// Register all metrics
	if err := registry.RegisterCounterVec("rdf_generator", "generations_total", m.generationsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("rdf_generator", "triples_total", m.triplesTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("rdf_generator", "entities_total", m.entitiesTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("rdf_generator", "errors", m.errors); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("rdf_generator", "generation_duration", m.generationDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("rdf_generator", "output_size", m.outputSize); err != nil {
		return nil, err
	}

	return m, nil
}

// recordGeneration records one successful graph generation.
func (m *generatorMetrics) recordGeneration(format string, triples, outputBytes int, duration time.Duration) {
	if m == nil {
		return
	}

	m.generationsTotal.WithLabelValues(format).Inc()
	m.triplesTotal.WithLabelValues(format).Add(float64(triples))
	m.generationDuration.WithLabelValues(format).Observe(duration.Seconds())
	m.outputSize.WithLabelValues(format).Observe(float64(outputBytes))
}

// recordEntities records the entity counts of one generated graph.
func (m *generatorMetrics) recordEntities(datasets, distributions, agents, columns int) {
	if m == nil {
		return
	}

	m.entitiesTotal.WithLabelValues("dataset").Add(float64(datasets))
	m.entitiesTotal.WithLabelValues("distribution").Add(float64(distributions))
	m.entitiesTotal.WithLabelValues("agent").Add(float64(agents))
	m.entitiesTotal.WithLabelValues("column").Add(float64(columns))
}

// recordError records a generation error.
func (m *generatorMetrics) recordError(errorType string) {
	if m == nil {
		return
	}

	m.errors.WithLabelValues(errorType).Inc()
}
