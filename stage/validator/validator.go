// Package validator provides the pipeline stage that checks record sets
// against required-field, type, and JSON-Schema rules before RDF generation.
package validator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/record"
)

// Name is the registry name of the validator stage.
const Name = "validator"

// Option keys recognized by the stage.
const (
	// OptStrict aborts the stage on the first pass with any issue.
	OptStrict = "strict"
	// OptRequiredFields lists fields that must be present and non-empty.
	OptRequiredFields = "required_fields"
	// OptAllowEmpty relaxes required checks to presence only.
	OptAllowEmpty = "allow_empty"
	// OptFieldTypes maps field names to expected value types
	// (string, integer, number, boolean, date).
	OptFieldTypes = "field_types"
	// OptSchema supplies a JSON Schema document applied to every row.
	OptSchema = "schema"
)

// Rule identifiers recorded on issues.
const (
	RuleRequired = "required"
	RuleType     = "type"
	RuleSchema   = "schema"
)

// FailedError is returned in strict mode when any rule is violated. It
// carries the full ordered issue list so callers can still report every
// finding even though no output was produced.
type FailedError struct {
	Issues []plugin.Issue
}

// Error implements the error interface
func (e *FailedError) Error() string {
	return fmt.Sprintf("validation failed with %d issue(s)", len(e.Issues))
}

// Unwrap ties the failure to the ErrValidationFailed sentinel.
func (e *FailedError) Unwrap() error {
	return errors.ErrValidationFailed
}

// Stage validates record sets. Two operating modes: strict (any issue aborts
// with FailedError, no output) and lenient (issues are collected and all rows
// continue down the pipeline as warnings).
type Stage struct {
	logger  *slog.Logger
	metrics *validatorMetrics
}

// New creates a validator stage. A nil metrics registry disables metrics.
func New(logger *slog.Logger, registry *metric.MetricsRegistry) *Stage {
	metrics, err := newValidatorMetrics(registry)
	if err != nil {
		logger.Error("Failed to initialize validator metrics", "error", err)
		metrics = nil // Continue without metrics
	}
	return &Stage{logger: logger, metrics: metrics}
}

// Register registers the validator stage with the plugin registry.
func Register(registry *plugin.Registry, logger *slog.Logger, metrics *metric.MetricsRegistry) error {
	return registry.Register(New(logger, metrics))
}

// Name implements the plugin contract.
func (s *Stage) Name() string {
	return Name
}

// Execute validates the payload's records. Issue ordering is deterministic:
// row order first, then rule declaration order within a row (required fields
// as declared, type rules in lexical field order, then schema findings).
func (s *Stage) Execute(ctx context.Context, payload *plugin.Payload, opts plugin.Options) (*plugin.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Validator", "Execute", "context check")
	}

	start := time.Now()
	strict := opts.GetBool(OptStrict, false)

	rules, err := rulesFromOptions(opts)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Validator", "Execute", "rule configuration")
	}

	var issues []plugin.Issue
	for i, row := range payload.Records.Rows {
		issues = append(issues, rules.check(i, row)...)
	}

	mode := "lenient"
	if strict {
		mode = "strict"
	}
	s.metrics.recordValidation(mode, payload.Records.Len(), issues, time.Since(start))
	s.logger.Debug("Validation pass complete",
		"component", Name,
		"mode", mode,
		"rows", payload.Records.Len(),
		"issues", len(issues))

	if strict && len(issues) > 0 {
		return nil, &FailedError{Issues: issues}
	}

	return payload.WithIssues(issues...), nil
}

// ruleSet holds the compiled validation rules in evaluation order.
type ruleSet struct {
	required   []string
	allowEmpty bool
	types      []typeRule
	schema     *gojsonschema.Schema
}

type typeRule struct {
	field    string
	typeName string
}

func rulesFromOptions(opts plugin.Options) (*ruleSet, error) {
	rules := &ruleSet{
		required:   opts.GetStringSlice(OptRequiredFields, nil),
		allowEmpty: opts.GetBool(OptAllowEmpty, false),
	}

	fieldTypes := opts.GetStringMap(OptFieldTypes)
	fields := make([]string, 0, len(fieldTypes))
	for field := range fieldTypes {
		fields = append(fields, field)
	}
	// Option maps carry no declaration order; lexical order keeps the
	// issue sequence reproducible.
	sort.Strings(fields)
	for _, field := range fields {
		typeName := fieldTypes[field]
		if !validTypeName(typeName) {
			return nil, fmt.Errorf("%w: unknown field type %q for field %q",
				errors.ErrInvalidConfig, typeName, field)
		}
		rules.types = append(rules.types, typeRule{field: field, typeName: typeName})
	}

	if schemaDoc := opts.GetString(OptSchema, ""); schemaDoc != "" {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaDoc))
		if err != nil {
			return nil, fmt.Errorf("%w: schema compilation: %v", errors.ErrInvalidConfig, err)
		}
		rules.schema = schema
	}

	return rules, nil
}

func validTypeName(name string) bool {
	switch name {
	case "string", "integer", "number", "boolean", "date":
		return true
	}
	return false
}

// check evaluates all rules against one row, in declaration order.
func (r *ruleSet) check(rowIndex int, row record.Record) []plugin.Issue {
	var issues []plugin.Issue

	for _, field := range r.required {
		value, present := row.Get(field)
		if !present {
			issues = append(issues, plugin.Issue{
				Row:     rowIndex,
				Field:   field,
				Rule:    RuleRequired,
				Message: fmt.Sprintf("missing required field %q", field),
			})
			continue
		}
		if !r.allowEmpty && strings.TrimSpace(value) == "" {
			issues = append(issues, plugin.Issue{
				Row:     rowIndex,
				Field:   field,
				Rule:    RuleRequired,
				Message: fmt.Sprintf("empty value for required field %q", field),
			})
		}
	}

	for _, tr := range r.types {
		value, present := row.Get(tr.field)
		if !present || strings.TrimSpace(value) == "" {
			// Absence is the required rule's concern.
			continue
		}
		if !valueMatchesType(value, tr.typeName) {
			issues = append(issues, plugin.Issue{
				Row:     rowIndex,
				Field:   tr.field,
				Rule:    RuleType,
				Message: fmt.Sprintf("value %q is not a valid %s", value, tr.typeName),
			})
		}
	}

	if r.schema != nil {
		issues = append(issues, r.checkSchema(rowIndex, row)...)
	}

	return issues
}

func valueMatchesType(value, typeName string) bool {
	v := strings.TrimSpace(value)
	switch typeName {
	case "string":
		return true
	case "integer":
		_, err := strconv.ParseInt(v, 10, 64)
		return err == nil
	case "number":
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	case "boolean":
		switch strings.ToLower(v) {
		case "true", "false":
			return true
		}
		return false
	case "date":
		_, err := time.Parse("2006-01-02", v)
		return err == nil
	}
	return false
}

func (r *ruleSet) checkSchema(rowIndex int, row record.Record) []plugin.Issue {
	document := make(map[string]any, len(row))
	for k, v := range row {
		document[k] = v
	}

	result, err := r.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return []plugin.Issue{{
			Row:     rowIndex,
			Rule:    RuleSchema,
			Message: fmt.Sprintf("schema evaluation failed: %v", err),
		}}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]plugin.Issue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, plugin.Issue{
			Row:     rowIndex,
			Field:   re.Field(),
			Rule:    RuleSchema,
			Message: re.Description(),
		})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}
