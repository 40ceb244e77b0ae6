package rdfgen

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/rdf"
	"github.com/c360/healthdcat/record"
	"github.com/c360/healthdcat/vocabulary"
)

const testDatasetURI = "https://example.org/dataset/health"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayload(columns []string, rows ...record.Record) *plugin.Payload {
	return plugin.NewPayload(record.Set{Columns: columns, Rows: rows})
}

func TestGeneratorName(t *testing.T) {
	stage := New(testLogger(), nil)
	assert.Equal(t, "rdf_generator", stage.Name())
}

func TestGeneratorConfigErrors(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload([]string{"title"}, record.Record{"title": "A"})

	t.Run("missing dataset_uri", func(t *testing.T) {
		_, err := stage.Execute(context.Background(), payload, plugin.Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrMissingConfig)
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("unsupported format fails before generation", func(t *testing.T) {
		_, err := stage.Execute(context.Background(), payload, plugin.Options{
			OptFormat: "csv",
			// dataset_uri deliberately absent: the format check comes first
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), `"csv"`)
	})
}

func TestGeneratorTurtleOutput(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"title", "publisher", "license"},
		record.Record{"title": "Admissions 2024", "publisher": "Health Agency", "license": "https://example.org/license"},
		record.Record{"title": "Discharges 2024", "publisher": "Health Agency", "license": "https://example.org/license"},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Output)

	t.Run("prefix header", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out.Output, "@prefix csvw: <http://www.w3.org/ns/csvw#> ."),
			"prefix header should lead the document in sorted order")
		assert.Contains(t, out.Output, "@prefix healthdcat: <https://health.ec.europa.eu/healthdcat-ap/> .")
	})

	t.Run("dataset entity", func(t *testing.T) {
		assert.Contains(t, out.Output, "<"+testDatasetURI+"> a dcat:Dataset ;")
		assert.Contains(t, out.Output, `dct:title "Health Dataset"`)
		assert.Contains(t, out.Output, "schema:numberOfItems 2")
		assert.Contains(t, out.Output, `healthdcat:hasHealthCategory "general"`)
		assert.Contains(t, out.Output, "csvw:tableSchema <"+testDatasetURI+"/schema>")
	})

	t.Run("distributions in row order", func(t *testing.T) {
		first := strings.Index(out.Output, "<"+testDatasetURI+"/record/0> a dcat:Distribution ;")
		second := strings.Index(out.Output, "<"+testDatasetURI+"/record/1> a dcat:Distribution ;")
		require.GreaterOrEqual(t, first, 0)
		require.Greater(t, second, first)
		assert.Contains(t, out.Output, `dct:title "Admissions 2024"`)
	})

	t.Run("url-valued properties become references", func(t *testing.T) {
		assert.Contains(t, out.Output, "dct:license <https://example.org/license>")
		assert.NotContains(t, out.Output, `"https://example.org/license"`)
	})

	t.Run("publishers dedupe into one agent", func(t *testing.T) {
		agent := "<" + testDatasetURI + "/agent/1>"
		assert.Contains(t, out.Output, "dct:publisher "+agent)
		assert.Contains(t, out.Output, agent+" a foaf:Agent ;")
		assert.Contains(t, out.Output, `foaf:name "Health Agency"`)
		assert.NotContains(t, out.Output, "/agent/2")
	})

	t.Run("table schema in column order", func(t *testing.T) {
		assert.Contains(t, out.Output, "<"+testDatasetURI+"/schema> a csvw:TableSchema ;")
		title := strings.Index(out.Output, `csvw:name "title"`)
		publisher := strings.Index(out.Output, `csvw:name "publisher"`)
		license := strings.Index(out.Output, `csvw:name "license"`)
		require.GreaterOrEqual(t, title, 0)
		assert.Greater(t, publisher, title)
		assert.Greater(t, license, publisher)
		assert.Contains(t, out.Output, `csvw:datatype "string"`)
	})
}

func TestGeneratorNTriplesOutput(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"title", "publisher"},
		record.Record{"title": "A", "publisher": "Org One"},
		record.Record{"title": "B", "publisher": "Org Two"},
		record.Record{"title": "C", "publisher": "Org One"},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptFormat:     rdf.FormatNTriples,
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)

	triples, err := rdf.DecodeNTriples(strings.NewReader(out.Output))
	require.NoError(t, err)

	agents := 0
	distributions := 0
	for _, triple := range triples {
		if triple.Predicate.Value != vocabulary.RdfType {
			continue
		}
		switch triple.Object.String() {
		case vocabulary.ClassAgent:
			agents++
		case vocabulary.ClassDistribution:
			distributions++
		}
	}
	assert.Equal(t, 2, agents, "distinct publisher values mint distinct agents")
	assert.Equal(t, 3, distributions, "one distribution per row")
}

func TestGeneratorKeyFieldIdentifiers(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"id", "title"},
		record.Record{"id": "rec-001", "title": "A"},
	)
	opts := plugin.Options{
		OptFormat:     rdf.FormatNTriples,
		OptDatasetURI: testDatasetURI,
		OptKeyField:   "id",
	}

	first, err := stage.Execute(context.Background(), payload, opts)
	require.NoError(t, err)
	second, err := stage.Execute(context.Background(), payload, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output, "same key yields the same identifiers")
	assert.NotContains(t, first.Output, testDatasetURI+"/record/0",
		"key-derived identifiers replace positional ones")

	uuid1 := recordUUID(testDatasetURI, "rec-001")
	assert.Contains(t, first.Output, testDatasetURI+"/record/"+uuid1.String())

	other := recordUUID("https://example.org/dataset/other", "rec-001")
	assert.NotEqual(t, uuid1, other, "identifiers are scoped to the dataset")
}

func TestGeneratorMappingOverrides(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"name"},
		record.Record{"name": "Dataset A"},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
		OptMappings:   map[string]any{"name": vocabulary.DctTitle},
	})
	require.NoError(t, err)
	assert.Contains(t, out.Output, `dct:title "Dataset A"`)
}

func TestGeneratorSkipsUnmappedAndEmptyFields(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"title", "internal_notes", "description"},
		record.Record{"title": "A", "internal_notes": "do not publish", "description": ""},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)

	assert.NotContains(t, out.Output, "do not publish")
	// Unmapped columns still show up in the table schema.
	assert.Contains(t, out.Output, `csvw:name "internal_notes"`)
	assert.NotContains(t, out.Output, "dct:description")
}

func TestGeneratorDatasetOptions(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload([]string{"title"}, record.Record{"title": "A"})

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI:     testDatasetURI + "/", // trailing slash is normalized
		OptTitle:          "Hospital Admissions",
		OptDescription:    "Monthly admission counts",
		OptHealthCategory: "hospital-care",
	})
	require.NoError(t, err)

	assert.Contains(t, out.Output, `dct:title "Hospital Admissions"`)
	assert.Contains(t, out.Output, `dct:description "Monthly admission counts"`)
	assert.Contains(t, out.Output, `healthdcat:hasHealthCategory "hospital-care"`)
	assert.Contains(t, out.Output, "<"+testDatasetURI+"/record/0>")
}

func TestGeneratorColumnDatatypes(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"title", "count", "ratio", "active", "issued"},
		record.Record{"title": "A", "count": "12", "ratio": "0.5", "active": "true", "issued": "2024-01-15"},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)

	assert.Contains(t, out.Output, `csvw:datatype "integer"`)
	assert.Contains(t, out.Output, `csvw:datatype "decimal"`)
	assert.Contains(t, out.Output, `csvw:datatype "boolean"`)
	assert.Contains(t, out.Output, `csvw:datatype "date"`)
	assert.Contains(t, out.Output, `csvw:datatype "string"`)
}

func TestGeneratorFloatLikeCellsStayStrings(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload(
		[]string{"title", "description"},
		record.Record{"title": "A", "description": "Inf"},
	)

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)

	// "Inf" is not a decimal lexical; it must come out as a quoted plain
	// literal, never as a bare token the Turtle grammar rejects.
	assert.Contains(t, out.Output, `dct:description "Inf"`)
	assert.NotContains(t, out.Output, "dct:description Inf")
	assert.NotContains(t, out.Output, `csvw:datatype "decimal"`)
}

func TestGeneratorPreservesInputPayload(t *testing.T) {
	stage := New(testLogger(), nil)
	payload := testPayload([]string{"title"}, record.Record{"title": "A"})

	out, err := stage.Execute(context.Background(), payload, plugin.Options{
		OptDatasetURI: testDatasetURI,
	})
	require.NoError(t, err)
	assert.Empty(t, payload.Output)
	assert.NotEmpty(t, out.Output)
	assert.Equal(t, payload.Records, out.Records)
}
