package pluginregistry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
)

func TestRegisterAllStages(t *testing.T) {
	registry := plugin.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Register(registry, logger, nil))

	assert.Equal(t, []string{"validator", "field_map", "row_filter", "rdf_generator"}, registry.List())
	for _, name := range registry.List() {
		p, err := registry.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}
}

func TestRegisterNilRegistry(t *testing.T) {
	err := Register(nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestRegisterTwiceRejected(t *testing.T) {
	registry := plugin.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Register(registry, logger, nil))
	err := Register(registry, logger, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateName)
}

func TestRegisterWithMetrics(t *testing.T) {
	registry := plugin.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, Register(registry, logger, metric.NewMetricsRegistry()))
	assert.Equal(t, 4, registry.Len())
}
