package transform

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/record"
)

// FieldMapName is the registry name of the field mapping stage.
const FieldMapName = "field_map"

// Option keys recognized by the field mapping stage.
const (
	// OptMappings lists source/target/transform rename rules.
	OptMappings = "mappings"
	// OptAddFields maps new column names to static values set on every row.
	OptAddFields = "add_fields"
	// OptRemoveFields lists columns to drop from every row.
	OptRemoveFields = "remove_fields"
)

// fieldMapping is one rename rule: read the source column, optionally rewrite
// the value, and store the result under the target column.
type fieldMapping struct {
	Source    string
	Target    string
	Transform string
}

// FieldMap renames and rewrites columns across a record set.
type FieldMap struct {
	logger  *slog.Logger
	metrics *transformMetrics
}

// NewFieldMap creates a field mapping stage. A nil metrics registry disables
// metrics.
func NewFieldMap(logger *slog.Logger, registry *metric.MetricsRegistry) *FieldMap {
	metrics, err := newTransformMetrics(registry, FieldMapName)
	if err != nil {
		logger.Error("Failed to initialize transform metrics", "error", err)
		metrics = nil // Continue without metrics
	}
	return &FieldMap{logger: logger, metrics: metrics}
}

// Register registers both transform stages with the plugin registry.
func Register(registry *plugin.Registry, logger *slog.Logger, metrics *metric.MetricsRegistry) error {
	if err := registry.Register(NewFieldMap(logger, metrics)); err != nil {
		return err
	}
	return registry.Register(NewRowFilter(logger, metrics))
}

// Name implements the plugin contract.
func (f *FieldMap) Name() string {
	return FieldMapName
}

// Execute applies the configured mappings to every row. Rules run in
// declaration order; added static fields are applied last, in lexical order.
func (f *FieldMap) Execute(ctx context.Context, payload *plugin.Payload, opts plugin.Options) (*plugin.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "FieldMap", "Execute", "context check")
	}

	start := time.Now()
	mappings, err := mappingsFromOptions(opts)
	if err != nil {
		return nil, errors.WrapInvalid(err, "FieldMap", "Execute", "mapping configuration")
	}
	addFields := opts.GetStringMap(OptAddFields)
	removeFields := opts.GetStringSlice(OptRemoveFields, nil)

	records := payload.Records.Clone()

	removed := 0
	for _, column := range removeFields {
		records.RemoveColumn(column)
		for _, row := range records.Rows {
			if _, ok := row[column]; ok {
				delete(row, column)
				removed++
			}
		}
	}

	mapped := 0
	for _, mapping := range mappings {
		renameColumn(&records, mapping.Source, mapping.Target)
		for _, row := range records.Rows {
			value, exists := row[mapping.Source]
			if !exists {
				continue
			}
			row[mapping.Target] = applyTransform(value, mapping.Transform)
			if mapping.Source != mapping.Target {
				delete(row, mapping.Source)
			}
			mapped++
		}
	}

	// Map iteration order is random; sorted keys keep the column order stable.
	added := make([]string, 0, len(addFields))
	for column := range addFields {
		added = append(added, column)
	}
	sort.Strings(added)
	for _, column := range added {
		records.AddColumn(column)
		for _, row := range records.Rows {
			row[column] = addFields[column]
		}
	}

	f.metrics.recordTransform(FieldMapName, records.Len(), time.Since(start))
	f.metrics.recordFieldOperations(FieldMapName, len(added)*records.Len(), removed, mapped)
	f.logger.Debug("Field mapping complete",
		"component", FieldMapName,
		"rows", records.Len(),
		"mapped", mapped,
		"removed", removed)

	return payload.With(records), nil
}

func mappingsFromOptions(opts plugin.Options) ([]fieldMapping, error) {
	raw, exists := opts[OptMappings]
	if !exists {
		return nil, nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: mappings must be a list", errors.ErrInvalidConfig)
	}

	mappings := make([]fieldMapping, 0, len(entries))
	for i, entry := range entries {
		fields := plugin.Options{}
		switch e := entry.(type) {
		case map[string]any:
			fields = plugin.Options(e)
		case map[string]string:
			for k, v := range e {
				fields[k] = v
			}
		default:
			return nil, fmt.Errorf("%w: mapping %d must be an object", errors.ErrInvalidConfig, i)
		}

		mapping := fieldMapping{
			Source:    fields.GetString("source", ""),
			Target:    fields.GetString("target", ""),
			Transform: fields.GetString("transform", "copy"),
		}
		if mapping.Source == "" {
			return nil, fmt.Errorf("%w: mapping %d has no source field", errors.ErrInvalidConfig, i)
		}
		if mapping.Target == "" {
			mapping.Target = mapping.Source
		}
		if !validTransform(mapping.Transform) {
			return nil, fmt.Errorf("%w: mapping %d has unknown transform %q",
				errors.ErrInvalidConfig, i, mapping.Transform)
		}
		mappings = append(mappings, mapping)
	}
	return mappings, nil
}

// renameColumn renames one entry of the declaration order. When the target
// is already declared the source entry is dropped instead, so the column list
// never carries duplicates after a merge-style rename.
func renameColumn(records *record.Set, source, target string) {
	if source == target || !records.HasColumn(source) {
		return
	}
	if records.HasColumn(target) {
		records.RemoveColumn(source)
		return
	}
	for i, column := range records.Columns {
		if column == source {
			records.Columns[i] = target
		}
	}
}

func validTransform(name string) bool {
	switch name {
	case "", "copy", "uppercase", "lowercase", "trim":
		return true
	}
	return false
}

// applyTransform rewrites a value according to the transform name.
func applyTransform(value, transform string) string {
	switch transform {
	case "uppercase":
		return strings.ToUpper(value)
	case "lowercase":
		return strings.ToLower(value)
	case "trim":
		return strings.TrimSpace(value)
	default:
		return value
	}
}
