// Package converter orchestrates the conversion pipeline: read tabular
// source data, run the configured validation and transform stages, and
// generate the serialized RDF output. The converter itself holds no stage
// logic; every step is a plugin resolved by name from the registry, and any
// stage failure aborts the run with the stage's name attached to the error.
package converter

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/rdf"
	"github.com/c360/healthdcat/reader"
	"github.com/c360/healthdcat/stage/rdfgen"
	"github.com/c360/healthdcat/stage/validator"
)

// readStage labels errors raised while reading the source, before any
// plugin runs.
const readStage = "reader"

// StageConfig names one transform stage to run, with its options.
type StageConfig struct {
	Name    string         `json:"name"`
	Options plugin.Options `json:"options,omitempty"`
}

// Options configures one conversion run.
type Options struct {
	// Format selects the output serialization. Defaults to turtle.
	Format string `json:"format,omitempty"`
	// DatasetURI is the IRI of the generated dataset entity. Required.
	DatasetURI string `json:"dataset_uri"`

	// Validate enables the validation stage.
	Validate bool `json:"validate,omitempty"`
	// Strict aborts the run when validation finds any issue. In lenient mode
	// issues are reported on the result and every row continues downstream.
	Strict bool `json:"strict,omitempty"`
	// RequiredFields lists fields every row must carry a non-empty value for.
	RequiredFields []string `json:"required_fields,omitempty"`
	// FieldTypes maps field names to expected value types.
	FieldTypes map[string]string `json:"field_types,omitempty"`
	// Schema is an optional JSON Schema document applied to every row.
	Schema string `json:"schema,omitempty"`
	// AllowEmpty relaxes required checks to presence only.
	AllowEmpty bool `json:"allow_empty,omitempty"`

	// Transforms lists the transform stages to run, in order, between
	// validation and generation.
	Transforms []StageConfig `json:"transforms,omitempty"`

	// Mappings overrides the default column-to-property mapping.
	Mappings map[string]string `json:"mappings,omitempty"`
	// KeyField derives record identifiers from a column instead of positions.
	KeyField string `json:"key_field,omitempty"`
	// Title sets the dataset title.
	Title string `json:"title,omitempty"`
	// Description sets the dataset description.
	Description string `json:"description,omitempty"`
	// HealthCategory sets the dataset's health category tag.
	HealthCategory string `json:"health_category,omitempty"`
}

// Result is the outcome of one conversion run. Issues carries validation
// findings in both modes: warnings on success, and the full finding list when
// strict validation aborted the run.
type Result struct {
	// Output is the serialized graph. Empty when the run failed.
	Output string `json:"output,omitempty"`
	// Issues lists validation findings in deterministic order.
	Issues []plugin.Issue `json:"issues,omitempty"`
	// Rows is the number of rows that reached the generator.
	Rows int `json:"rows"`
	// Success reports whether output was produced.
	Success bool `json:"success"`
}

// Converter runs conversion pipelines against a plugin registry.
type Converter struct {
	registry *plugin.Registry
	reader   reader.Reader
	logger   *slog.Logger
	metrics  *converterMetrics
}

// New creates a converter. The reader defaults to CSV when nil, and a nil
// metrics registry disables metrics.
func New(registry *plugin.Registry, r reader.Reader, logger *slog.Logger, metricsRegistry *metric.MetricsRegistry) *Converter {
	if r == nil {
		r = reader.NewCSVReader()
	}
	if logger == nil {
		logger = slog.Default()
	}
	metrics, err := newConverterMetrics(metricsRegistry)
	if err != nil {
		logger.Error("Failed to initialize converter metrics", "error", err)
		metrics = nil // Continue without metrics
	}
	return &Converter{
		registry: registry,
		reader:   r,
		logger:   logger,
		metrics:  metrics,
	}
}

// Convert runs the pipeline against one source. The run is fail-fast: option
// errors surface before the source is read, and the first stage failure
// aborts the pipeline with a stage-labeled error. When strict validation
// aborts the run, the returned result still carries the full issue list.
func (c *Converter) Convert(ctx context.Context, source io.Reader, opts Options) (*Result, error) {
	start := time.Now()

	if err := c.checkOptions(opts); err != nil {
		c.metrics.recordConversion("rejected", time.Since(start))
		return &Result{}, err
	}

	records, err := c.reader.Read(ctx, source)
	if err != nil {
		c.metrics.recordConversion("read_error", time.Since(start))
		return &Result{}, errors.WrapStage(readStage, err)
	}
	c.logger.Info("Source read",
		"rows", records.Len(),
		"columns", len(records.Columns))

	payload := plugin.NewPayload(records)

	if opts.Validate {
		payload, err = c.runStage(ctx, payload, validator.Name, validatorOptions(opts))
		if err != nil {
			c.metrics.recordConversion("validation_failed", time.Since(start))
			result := &Result{}
			var failed *validator.FailedError
			if stderrors.As(err, &failed) {
				result.Issues = failed.Issues
			}
			return result, err
		}
	}

	for _, stage := range opts.Transforms {
		out, err := c.runStage(ctx, payload, stage.Name, stage.Options)
		if err != nil {
			c.metrics.recordConversion("transform_failed", time.Since(start))
			return &Result{Issues: payload.Issues}, err
		}
		payload = out
	}

	out, err := c.runStage(ctx, payload, rdfgen.Name, generatorOptions(opts))
	if err != nil {
		c.metrics.recordConversion("generation_failed", time.Since(start))
		return &Result{Issues: payload.Issues}, err
	}
	payload = out

	c.metrics.recordConversion("success", time.Since(start))
	c.metrics.recordRows(payload.Records.Len(), len(payload.Issues))
	c.logger.Info("Conversion complete",
		"rows", payload.Records.Len(),
		"issues", len(payload.Issues),
		"bytes", len(payload.Output),
		"duration", time.Since(start))

	return &Result{
		Output:  payload.Output,
		Issues:  payload.Issues,
		Rows:    payload.Records.Len(),
		Success: true,
	}, nil
}

// checkOptions rejects unusable options before the source is touched.
func (c *Converter) checkOptions(opts Options) error {
	if format := opts.Format; format != "" && !rdf.FormatSupported(format) {
		return errors.WrapStage(rdfgen.Name, fmt.Errorf("%w: %q (supported: %s)",
			errors.ErrUnsupportedFormat, format, strings.Join(rdf.Formats(), ", ")))
	}
	if strings.TrimSpace(opts.DatasetURI) == "" {
		return errors.WrapStage(rdfgen.Name, fmt.Errorf(
			"%w: dataset_uri is required", errors.ErrMissingConfig))
	}
	for _, stage := range opts.Transforms {
		if _, err := c.registry.Get(stage.Name); err != nil {
			return errors.WrapStage(stage.Name, err)
		}
	}
	return nil
}

// runStage resolves one plugin and executes it, labeling failures with the
// stage name.
func (c *Converter) runStage(ctx context.Context, payload *plugin.Payload, name string, opts plugin.Options) (*plugin.Payload, error) {
	p, err := c.registry.Get(name)
	if err != nil {
		return nil, errors.WrapStage(name, err)
	}

	stageStart := time.Now()
	out, err := p.Execute(ctx, payload, opts)
	c.metrics.recordStage(name, err == nil, time.Since(stageStart))
	if err != nil {
		return nil, errors.WrapStage(name, err)
	}

	c.logger.Debug("Stage complete",
		"stage", name,
		"rows", out.Records.Len(),
		"duration", time.Since(stageStart))
	return out, nil
}

func validatorOptions(opts Options) plugin.Options {
	vo := plugin.Options{
		validator.OptStrict: opts.Strict,
	}
	if len(opts.RequiredFields) > 0 {
		vo[validator.OptRequiredFields] = opts.RequiredFields
	}
	if len(opts.FieldTypes) > 0 {
		vo[validator.OptFieldTypes] = opts.FieldTypes
	}
	if opts.Schema != "" {
		vo[validator.OptSchema] = opts.Schema
	}
	if opts.AllowEmpty {
		vo[validator.OptAllowEmpty] = true
	}
	return vo
}

func generatorOptions(opts Options) plugin.Options {
	gen := plugin.Options{
		rdfgen.OptDatasetURI: opts.DatasetURI,
	}
	if opts.Format != "" {
		gen[rdfgen.OptFormat] = opts.Format
	}
	if len(opts.Mappings) > 0 {
		gen[rdfgen.OptMappings] = opts.Mappings
	}
	if opts.KeyField != "" {
		gen[rdfgen.OptKeyField] = opts.KeyField
	}
	if opts.Title != "" {
		gen[rdfgen.OptTitle] = opts.Title
	}
	if opts.Description != "" {
		gen[rdfgen.OptDescription] = opts.Description
	}
	if opts.HealthCategory != "" {
		gen[rdfgen.OptHealthCategory] = opts.HealthCategory
	}
	return gen
}
