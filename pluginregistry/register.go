// Package pluginregistry provides plugin registration for the conversion
// pipeline. It wires every built-in stage into a plugin registry so the
// converter and the CLI share one bootstrap path.
package pluginregistry

import (
	"errors"
	"log/slog"

	pkgerrors "github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/stage/rdfgen"
	"github.com/c360/healthdcat/stage/transform"
	"github.com/c360/healthdcat/stage/validator"
)

// Register registers all built-in pipeline stages with the provided registry:
//
//   - validator (rule-based record validation)
//   - field_map (column renaming and value rewriting)
//   - row_filter (predicate-based row filtering)
//   - rdf_generator (HealthDCAT-AP graph generation and serialization)
//
// The metrics registry may be nil; stages then run without metrics.
func Register(registry *plugin.Registry, logger *slog.Logger, metrics *metric.MetricsRegistry) error {
	// CRITICAL: Nil registry is a programming error (fatal), not invalid input
	if registry == nil {
		return pkgerrors.WrapFatal(
			errors.New("registry cannot be nil"),
			"PluginRegistry", "Register", "registry validation")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := validator.Register(registry, logger, metrics); err != nil {
		return pkgerrors.WrapInvalid(err, "PluginRegistry", "Register", "validator stage registration")
	}

	if err := transform.Register(registry, logger, metrics); err != nil {
		return pkgerrors.WrapInvalid(err, "PluginRegistry", "Register", "transform stage registration")
	}

	if err := rdfgen.Register(registry, logger, metrics); err != nil {
		return pkgerrors.WrapInvalid(err, "PluginRegistry", "Register", "RDF generator stage registration")
	}

	return nil
}
