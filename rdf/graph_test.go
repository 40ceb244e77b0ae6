package rdf

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/healthdcat/errors"
)

func testGraph() *Graph {
	g := NewGraph()
	ds := IRI{Value: "http://example.org/ds"}
	g.Add(Triple{Subject: ds, Predicate: IRI{Value: rdfType}, Object: IRI{Value: "http://www.w3.org/ns/dcat#Dataset"}})
	g.Add(Triple{Subject: ds, Predicate: IRI{Value: "http://purl.org/dc/terms/title"}, Object: Literal{Lexical: "Health Dataset"}})
	g.Add(Triple{
		Subject:   ds,
		Predicate: IRI{Value: "http://schema.org/numberOfItems"},
		Object:    Literal{Lexical: "2", Datatype: IRI{Value: xsdInteger}},
	})
	g.Add(Triple{
		Subject:   IRI{Value: "http://example.org/ds/record/0"},
		Predicate: IRI{Value: "http://purl.org/dc/terms/description"},
		Object:    Literal{Lexical: "first \"quoted\"\nline", Lang: ""},
	})
	g.Add(Triple{
		Subject:   IRI{Value: "http://example.org/ds/record/0"},
		Predicate: IRI{Value: "http://purl.org/dc/terms/language"},
		Object:    Literal{Lexical: "Gesundheitsdaten", Lang: "de"},
	})
	return g
}

func TestGraphPreservesInsertionOrder(t *testing.T) {
	g := testGraph()
	triples := g.Triples()

	require.Len(t, triples, 5)
	assert.Equal(t, "http://example.org/ds", triples[0].Subject.String())
	assert.Equal(t, rdfType, triples[0].Predicate.Value)
	assert.Equal(t, "http://example.org/ds/record/0", triples[3].Subject.String())
}

func TestTriplesReturnsCopy(t *testing.T) {
	g := testGraph()
	triples := g.Triples()
	triples[0].Predicate = IRI{Value: "mutated"}

	assert.Equal(t, rdfType, g.Triples()[0].Predicate.Value)
}

func TestGraphAddAll(t *testing.T) {
	g := NewGraph()
	col := IRI{Value: "http://example.org/ds/schema/column/0"}
	g.AddAll([]Triple{
		{Subject: col, Predicate: IRI{Value: rdfType}, Object: IRI{Value: "http://www.w3.org/ns/csvw#Column"}},
		{Subject: col, Predicate: IRI{Value: "http://www.w3.org/ns/csvw#name"}, Object: Literal{Lexical: "title"}},
	})

	triples := g.Triples()
	require.Len(t, triples, 2)
	assert.Equal(t, "http://www.w3.org/ns/csvw#Column", triples[0].Object.String())
	assert.Equal(t, "http://www.w3.org/ns/csvw#name", triples[1].Predicate.Value)
}

func TestEncodeTurtle(t *testing.T) {
	prefixes := map[string]string{
		"dcat":   "http://www.w3.org/ns/dcat#",
		"dct":    "http://purl.org/dc/terms/",
		"schema": "http://schema.org/",
	}

	text, err := testGraph().Serialize(FormatTurtle, prefixes)
	require.NoError(t, err)

	// Prefix header in sorted order.
	assert.True(t, strings.HasPrefix(text,
		"@prefix dcat: <http://www.w3.org/ns/dcat#> .\n"+
			"@prefix dct: <http://purl.org/dc/terms/> .\n"+
			"@prefix schema: <http://schema.org/> .\n"))

	assert.Contains(t, text, "<http://example.org/ds> a dcat:Dataset ;")
	assert.Contains(t, text, `dct:title "Health Dataset" ;`)
	assert.Contains(t, text, "schema:numberOfItems 2 .")
	assert.Contains(t, text, `dct:description "first \"quoted\"\nline" ;`)
	assert.Contains(t, text, `dct:language "Gesundheitsdaten"@de .`)
}

func TestEncodeTurtleTypedLiteralTokens(t *testing.T) {
	prefixes := map[string]string{
		"dct": "http://purl.org/dc/terms/",
		"xsd": "http://www.w3.org/2001/XMLSchema#",
	}
	ds := IRI{Value: "http://example.org/ds"}

	tests := []struct {
		name     string
		object   Literal
		expected string
	}{
		{
			"bare integer",
			Literal{Lexical: "42", Datatype: IRI{Value: xsdInteger}},
			"42 .",
		},
		{
			"bare decimal",
			Literal{Lexical: "-0.25", Datatype: IRI{Value: xsdDecimal}},
			"-0.25 .",
		},
		{
			"bare boolean",
			Literal{Lexical: "false", Datatype: IRI{Value: xsdBoolean}},
			"false .",
		},
		{
			"non-numeric decimal lexical stays quoted",
			Literal{Lexical: "Inf", Datatype: IRI{Value: xsdDecimal}},
			`"Inf"^^xsd:decimal .`,
		},
		{
			"dotless decimal lexical stays quoted",
			Literal{Lexical: "5", Datatype: IRI{Value: xsdDecimal}},
			`"5"^^xsd:decimal .`,
		},
		{
			"uppercase boolean lexical stays quoted",
			Literal{Lexical: "TRUE", Datatype: IRI{Value: xsdBoolean}},
			`"TRUE"^^xsd:boolean .`,
		},
		{
			"exponent integer lexical stays quoted",
			Literal{Lexical: "1e5", Datatype: IRI{Value: xsdInteger}},
			`"1e5"^^xsd:integer .`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			g.Add(Triple{Subject: ds, Predicate: IRI{Value: "http://purl.org/dc/terms/extent"}, Object: tt.object})

			text, err := g.Serialize(FormatTurtle, prefixes)
			require.NoError(t, err)
			assert.Contains(t, text, "dct:extent "+tt.expected)
		})
	}
}

func TestEncodeTurtleDeterministic(t *testing.T) {
	prefixes := map[string]string{"dct": "http://purl.org/dc/terms/"}

	first, err := testGraph().Serialize(FormatTurtle, prefixes)
	require.NoError(t, err)
	second, err := testGraph().Serialize(FormatTurtle, prefixes)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompactIRIFallsBackToFullForm(t *testing.T) {
	prefixes := map[string]string{"ex": "http://example.org/"}
	g := NewGraph()
	g.Add(Triple{
		Subject:   IRI{Value: "http://example.org/ds/record/0"},
		Predicate: IRI{Value: "http://example.org/simple"},
		Object:    IRI{Value: "http://other.org/x"},
	})

	text, err := g.Serialize(FormatTurtle, prefixes)
	require.NoError(t, err)

	// Local names with "/" are not safe prefixed names.
	assert.Contains(t, text, "<http://example.org/ds/record/0> ex:simple <http://other.org/x> .")
}

func TestSerializeUnsupportedFormat(t *testing.T) {
	_, err := testGraph().Serialize("csv", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), `"csv"`)
	assert.Contains(t, err.Error(), "turtle, ntriples")
}

func TestNTriplesRoundTrip(t *testing.T) {
	g := testGraph()
	g.Add(Triple{
		Subject:   BlankNode{ID: "b0"},
		Predicate: IRI{Value: "http://purl.org/dc/terms/title"},
		Object:    Literal{Lexical: "tab\there", Datatype: IRI{Value: "http://example.org/custom"}},
	})

	text, err := g.Serialize(FormatNTriples, nil)
	require.NoError(t, err)

	decoded, err := DecodeNTriples(strings.NewReader(text))
	require.NoError(t, err)

	// Set equality: order-independent comparison of the triple sets.
	want := g.Triples()
	sortTriples(want)
	sortTriples(decoded)
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func sortTriples(triples []Triple) {
	sort.Slice(triples, func(i, j int) bool {
		return triples[i].String() < triples[j].String()
	})
}

func TestDecodeNTriplesSkipsCommentsAndBlankLines(t *testing.T) {
	input := "# generated\n\n<http://a> <http://b> \"v\" .\n"
	triples, err := DecodeNTriples(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, Literal{Lexical: "v"}, triples[0].Object)
}

func TestDecodeNTriplesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing dot", "<http://a> <http://b> \"v\"\n"},
		{"unterminated literal", "<http://a> <http://b> \"v .\n"},
		{"literal subject", "\"v\" <http://b> <http://c> .\n"},
		{"unterminated iri", "<http://a <http://b> \"v\" .\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeNTriples(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrParsingFailed)
		})
	}
}

func TestLiteralString(t *testing.T) {
	assert.Equal(t, `"v"`, Literal{Lexical: "v"}.String())
	assert.Equal(t, `"v"@en`, Literal{Lexical: "v", Lang: "en"}.String())
	assert.Equal(t, `"5"^^<`+xsdInteger+`>`, Literal{Lexical: "5", Datatype: IRI{Value: xsdInteger}}.String())
}
