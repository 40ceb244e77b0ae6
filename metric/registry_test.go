package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/healthdcat/errors"
)

func newTestCounterVec(name string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthdcat",
		Subsystem: "test",
		Name:      name,
		Help:      "test counter",
	}, []string{"component"})
}

func TestRegisterCounterVec(t *testing.T) {
	registry := NewMetricsRegistry()

	err := registry.RegisterCounterVec("converter", "conversions_total", newTestCounterVec("conversions_total"))
	require.NoError(t, err)
}

func TestRegisterDuplicateMetric(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, registry.RegisterCounterVec("converter", "conversions_total",
		newTestCounterVec("conversions_total")))

	err := registry.RegisterCounterVec("converter", "conversions_total",
		newTestCounterVec("conversions_total"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, registry.RegisterCounterVec("converter", "conversions_total",
		newTestCounterVec("conversions_total")))

	assert.True(t, registry.Unregister("converter", "conversions_total"))
	assert.False(t, registry.Unregister("converter", "conversions_total"))

	// Re-registration succeeds after unregistering.
	require.NoError(t, registry.RegisterCounterVec("converter", "conversions_total",
		newTestCounterVec("conversions_total")))
}

func TestRegisterHistogramVec(t *testing.T) {
	registry := NewMetricsRegistry()

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "healthdcat",
		Subsystem: "test",
		Name:      "duration_seconds",
		Help:      "test histogram",
	}, []string{"component"})

	require.NoError(t, registry.RegisterHistogramVec("converter", "duration_seconds", histogram))
}
