// Package rdfgen provides the terminal pipeline stage that turns a record set
// into an RDF graph following the HealthDCAT-AP profile and serializes it.
//
// The generated graph describes one dcat:Dataset per conversion, one
// dcat:Distribution per source row, one foaf:Agent per distinct publisher
// value, and a csvw:TableSchema documenting the source columns. Entity and
// triple order is deterministic: the dataset first, then distributions in row
// order, agents in first-appearance order, and schema columns in declaration
// order.
package rdfgen

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/rdf"
	"github.com/c360/healthdcat/record"
	"github.com/c360/healthdcat/vocabulary"
)

// Name is the registry name of the RDF generation stage.
const Name = "rdf_generator"

// Option keys recognized by the stage.
const (
	// OptFormat selects the serialization format (turtle, ntriples).
	OptFormat = "format"
	// OptDatasetURI is the IRI of the dataset entity. Required.
	OptDatasetURI = "dataset_uri"
	// OptMappings overrides the default column-to-property mapping.
	OptMappings = "mappings"
	// OptKeyField names the column whose value identifies a record. When set,
	// record IRIs are derived from the key instead of the row position.
	OptKeyField = "key_field"
	// OptTitle sets the dataset title.
	OptTitle = "title"
	// OptDescription sets the dataset description.
	OptDescription = "description"
	// OptHealthCategory sets the dataset's health category tag.
	OptHealthCategory = "health_category"
)

// Defaults applied when the corresponding option is absent.
const (
	DefaultFormat         = rdf.FormatTurtle
	DefaultTitle          = "Health Dataset"
	DefaultHealthCategory = "general"
)

// Stage generates and serializes the RDF graph for a record set.
type Stage struct {
	logger  *slog.Logger
	metrics *generatorMetrics
}

// New creates an RDF generation stage. A nil metrics registry disables
// metrics.
func New(logger *slog.Logger, registry *metric.MetricsRegistry) *Stage {
	metrics, err := newGeneratorMetrics(registry)
	if err != nil {
		logger.Error("Failed to initialize generator metrics", "error", err)
		metrics = nil // Continue without metrics
	}
	return &Stage{logger: logger, metrics: metrics}
}

// Register registers the RDF generation stage with the plugin registry.
func Register(registry *plugin.Registry, logger *slog.Logger, metrics *metric.MetricsRegistry) error {
	return registry.Register(New(logger, metrics))
}

// Name implements the plugin contract.
func (s *Stage) Name() string {
	return Name
}

// Execute builds the graph and writes the serialized form to the payload's
// Output. The format is checked before any graph construction so an
// unsupported format fails without partial work.
func (s *Stage) Execute(ctx context.Context, payload *plugin.Payload, opts plugin.Options) (*plugin.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "RDFGenerator", "Execute", "context check")
	}

	start := time.Now()

	format := opts.GetString(OptFormat, DefaultFormat)
	if !rdf.FormatSupported(format) {
		s.metrics.recordError("unsupported_format")
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q (supported: %s)",
				errors.ErrUnsupportedFormat, format, strings.Join(rdf.Formats(), ", ")),
			"RDFGenerator", "Execute", "format check")
	}

	datasetURI := datasetBase(strings.TrimSpace(opts.GetString(OptDatasetURI, "")))
	if datasetURI == "" {
		s.metrics.recordError("missing_dataset_uri")
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: rdf_generator requires a dataset_uri option", errors.ErrMissingConfig),
			"RDFGenerator", "Execute", "dataset configuration")
	}

	graph := s.buildGraph(payload.Records, datasetURI, opts)

	output, err := graph.Serialize(format, vocabulary.Prefixes())
	if err != nil {
		s.metrics.recordError("serialization")
		return nil, errors.WrapInvalid(err, "RDFGenerator", "Execute", "graph serialization")
	}

	s.metrics.recordGeneration(format, graph.Len(), len(output), time.Since(start))
	s.logger.Debug("Graph generation complete",
		"component", Name,
		"format", format,
		"rows", payload.Records.Len(),
		"triples", graph.Len(),
		"bytes", len(output))

	out := payload.With(payload.Records)
	out.Output = output
	return out, nil
}

// buildGraph assembles the dataset, distribution, agent, and schema entities.
func (s *Stage) buildGraph(records record.Set, datasetURI string, opts plugin.Options) *rdf.Graph {
	graph := rdf.NewGraph()
	dataset := rdf.IRI{Value: datasetURI}
	overrides := normalizeOverrides(opts.GetStringMap(OptMappings))
	keyField := opts.GetString(OptKeyField, "")

	// Dataset entity first so serializations lead with it.
	graph.Add(typeTriple(dataset, vocabulary.ClassDataset))
	graph.Add(literalTriple(dataset, vocabulary.DctTitle, opts.GetString(OptTitle, DefaultTitle), ""))
	if description := opts.GetString(OptDescription, ""); description != "" {
		graph.Add(literalTriple(dataset, vocabulary.DctDescription, description, ""))
	}
	graph.Add(literalTriple(dataset, vocabulary.SchemaNumberOfItems,
		strconv.Itoa(records.Len()), vocabulary.XsdInteger))
	graph.Add(literalTriple(dataset, vocabulary.HealthdcatHasHealthCategory,
		opts.GetString(OptHealthCategory, DefaultHealthCategory), ""))
	graph.Add(rdf.Triple{
		Subject:   dataset,
		Predicate: rdf.IRI{Value: vocabulary.CsvwTableSchema},
		Object:    rdf.IRI{Value: schemaIRI(datasetURI)},
	})

	s.addTableSchema(graph, records, datasetURI)

	// Row entities follow the schema; agents are asserted at first reference.
	agents := newAgentIndex(datasetURI)
	for i, row := range records.Rows {
		keyValue := ""
		if keyField != "" {
			keyValue, _ = row.Get(keyField)
		}
		subject := rdf.IRI{Value: recordIRI(datasetURI, i, keyValue)}

		graph.Add(rdf.Triple{
			Subject:   dataset,
			Predicate: rdf.IRI{Value: vocabulary.DcatDistribution},
			Object:    subject,
		})
		graph.Add(typeTriple(subject, vocabulary.ClassDistribution))

		for _, column := range records.Columns {
			value, ok := row.Get(column)
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(column), vocabulary.FieldPublisher) {
				agent, fresh := agents.lookup(value)
				graph.Add(rdf.Triple{
					Subject:   subject,
					Predicate: rdf.IRI{Value: vocabulary.DctPublisher},
					Object:    rdf.IRI{Value: agent},
				})
				if fresh {
					graph.Add(typeTriple(rdf.IRI{Value: agent}, vocabulary.ClassAgent))
					graph.Add(literalTriple(rdf.IRI{Value: agent}, vocabulary.FoafName, value, ""))
				}
				continue
			}
			property, mapped := vocabulary.PropertyFor(column, overrides)
			if !mapped {
				// Unmapped columns still appear in the table schema.
				continue
			}
			graph.Add(propertyTriple(subject, property, value))
		}
	}

	s.metrics.recordEntities(1, records.Len(), agents.len(), len(records.Columns))
	return graph
}

// addTableSchema emits the csvw:TableSchema entity and one csvw:Column per
// source column, in declaration order, with datatypes inferred from the data.
func (s *Stage) addTableSchema(graph *rdf.Graph, records record.Set, datasetURI string) {
	schema := rdf.IRI{Value: schemaIRI(datasetURI)}
	graph.Add(typeTriple(schema, vocabulary.ClassTableSchema))

	for i, column := range records.Columns {
		values := make([]string, 0, records.Len())
		for _, row := range records.Rows {
			if v, ok := row.Get(column); ok {
				values = append(values, v)
			}
		}
		datatype := vocabulary.InferColumnDatatype(values)

		subject := rdf.IRI{Value: columnIRI(datasetURI, i)}
		graph.AddAll([]rdf.Triple{
			{
				Subject:   schema,
				Predicate: rdf.IRI{Value: vocabulary.CsvwColumn},
				Object:    subject,
			},
			typeTriple(subject, vocabulary.ClassColumn),
			literalTriple(subject, vocabulary.CsvwName, column, ""),
			literalTriple(subject, vocabulary.DctTitle, column, ""),
			literalTriple(subject, vocabulary.RdfsLabel, column, ""),
			literalTriple(subject, vocabulary.CsvwDatatype, vocabulary.DatatypeName(datatype), ""),
		})
	}
}

// agentIndex dedupes publisher values and mints one foaf:Agent per distinct
// value, numbered in first-appearance order.
type agentIndex struct {
	datasetURI string
	byValue    map[string]string
	count      int
}

func newAgentIndex(datasetURI string) *agentIndex {
	return &agentIndex{
		datasetURI: datasetURI,
		byValue:    make(map[string]string),
	}
}

// lookup returns the agent IRI for a publisher value, minting it on first
// use. The second result reports whether the agent is new.
func (a *agentIndex) lookup(value string) (string, bool) {
	if iri, ok := a.byValue[value]; ok {
		return iri, false
	}
	a.count++
	iri := agentIRI(a.datasetURI, a.count)
	a.byValue[value] = iri
	return iri, true
}

func (a *agentIndex) len() int {
	return a.count
}

// normalizeOverrides lowercases override keys so they match the same way the
// default profile mapping does.
func normalizeOverrides(overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(overrides))
	for k, v := range overrides {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func typeTriple(subject rdf.IRI, class string) rdf.Triple {
	return rdf.Triple{
		Subject:   subject,
		Predicate: rdf.IRI{Value: vocabulary.RdfType},
		Object:    rdf.IRI{Value: class},
	}
}

func literalTriple(subject rdf.IRI, property, lexical, datatype string) rdf.Triple {
	object := rdf.Literal{Lexical: lexical}
	if datatype != "" && datatype != vocabulary.XsdString {
		object.Datatype = rdf.IRI{Value: datatype}
	}
	return rdf.Triple{
		Subject:   subject,
		Predicate: rdf.IRI{Value: property},
		Object:    object,
	}
}

// propertyTriple asserts one mapped field value. URL-valued properties get an
// IRI object; everything else becomes a literal with an inferred datatype.
func propertyTriple(subject rdf.IRI, property, value string) rdf.Triple {
	trimmed := strings.TrimSpace(value)
	if vocabulary.IsURLProperty(property) {
		return rdf.Triple{
			Subject:   subject,
			Predicate: rdf.IRI{Value: property},
			Object:    rdf.IRI{Value: trimmed},
		}
	}
	return literalTriple(subject, property, trimmed, vocabulary.DatatypeForValue(trimmed))
}
