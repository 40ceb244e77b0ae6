package transform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
)

// RowFilterName is the registry name of the row filtering stage.
const RowFilterName = "row_filter"

// Option keys recognized by the row filtering stage.
const (
	// OptField names the column the predicate reads.
	OptField = "field"
	// OptEquals keeps rows whose field value matches exactly.
	OptEquals = "equals"
	// OptNonEmpty keeps rows whose field value is non-blank.
	OptNonEmpty = "non_empty"
)

// RowFilter drops rows that do not match a single-field predicate. Surviving
// rows keep their relative order.
type RowFilter struct {
	logger  *slog.Logger
	metrics *transformMetrics
}

// NewRowFilter creates a row filtering stage. A nil metrics registry disables
// metrics.
func NewRowFilter(logger *slog.Logger, registry *metric.MetricsRegistry) *RowFilter {
	metrics, err := newTransformMetrics(registry, RowFilterName)
	if err != nil {
		logger.Error("Failed to initialize transform metrics", "error", err)
		metrics = nil // Continue without metrics
	}
	return &RowFilter{logger: logger, metrics: metrics}
}

// Name implements the plugin contract.
func (r *RowFilter) Name() string {
	return RowFilterName
}

// Execute keeps the rows matching the configured predicate. With "equals"
// set, a row survives when the field value matches exactly; otherwise the
// stage keeps rows whose field value is non-blank.
func (r *RowFilter) Execute(ctx context.Context, payload *plugin.Payload, opts plugin.Options) (*plugin.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "RowFilter", "Execute", "context check")
	}

	start := time.Now()
	field := opts.GetString(OptField, "")
	if field == "" {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: row_filter requires a field option", errors.ErrMissingConfig),
			"RowFilter", "Execute", "filter configuration")
	}

	equals, hasEquals := opts[OptEquals]
	equalsValue := opts.GetString(OptEquals, "")
	if hasEquals {
		if _, ok := equals.(string); !ok {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: equals must be a string", errors.ErrInvalidConfig),
				"RowFilter", "Execute", "filter configuration")
		}
	}
	nonEmpty := opts.GetBool(OptNonEmpty, true)

	records := payload.Records.Clone()
	kept := records.Rows[:0]
	for _, row := range records.Rows {
		value, _ := row.Get(field)
		if matches(value, hasEquals, equalsValue, nonEmpty) {
			kept = append(kept, row)
		}
	}
	dropped := len(records.Rows) - len(kept)
	records.Rows = kept

	r.metrics.recordTransform(RowFilterName, records.Len(), time.Since(start))
	r.metrics.recordRowsFiltered(RowFilterName, dropped)
	r.logger.Debug("Row filtering complete",
		"component", RowFilterName,
		"field", field,
		"kept", records.Len(),
		"dropped", dropped)

	return payload.With(records), nil
}

func matches(value string, hasEquals bool, equals string, nonEmpty bool) bool {
	if hasEquals {
		return value == equals
	}
	if nonEmpty {
		return strings.TrimSpace(value) != ""
	}
	return true
}
