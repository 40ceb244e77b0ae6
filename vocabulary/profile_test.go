package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFor(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		overrides map[string]string
		expected  string
		found     bool
	}{
		{
			name:     "default title mapping",
			field:    "title",
			expected: DctTitle,
			found:    true,
		},
		{
			name:     "case insensitive lookup",
			field:    " Title ",
			expected: DctTitle,
			found:    true,
		},
		{
			name:      "override wins over default",
			field:     "title",
			overrides: map[string]string{"title": SchemaNS + "name"},
			expected:  SchemaNS + "name",
			found:     true,
		},
		{
			name:      "override adds unmapped field",
			field:     "cohort_size",
			overrides: map[string]string{"cohort_size": SchemaNumberOfItems},
			expected:  SchemaNumberOfItems,
			found:     true,
		},
		{
			name:  "unmapped field not found",
			field: "internal_notes",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iri, ok := PropertyFor(tt.field, tt.overrides)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, iri)
			}
		})
	}
}

func TestDefaultFieldMappingIsACopy(t *testing.T) {
	m := DefaultFieldMapping()
	m["title"] = "mutated"

	iri, ok := PropertyFor("title", nil)
	assert.True(t, ok)
	assert.Equal(t, DctTitle, iri)
}

func TestDatatypeForValue(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"true", XsdBoolean},
		{"FALSE", XsdBoolean},
		{"42", XsdInteger},
		{"-7", XsdInteger},
		{"3.14", XsdDecimal},
		{"2023-05-01", XsdDate},
		{"hello", XsdString},
		{"", XsdString},
		{"2023-13-45", XsdString},
		{"Inf", XsdString},
		{"-Inf", XsdString},
		{"NaN", XsdString},
		{"1e5", XsdString},
		{"0x1p4", XsdString},
		{"5.", XsdString},
		{".5", XsdDecimal},
		{"-0.25", XsdDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, DatatypeForValue(tt.value))
		})
	}
}

func TestInferColumnDatatype(t *testing.T) {
	assert.Equal(t, XsdInteger, InferColumnDatatype([]string{"", "  ", "10", "abc"}))
	assert.Equal(t, XsdString, InferColumnDatatype([]string{"", ""}))
	assert.Equal(t, XsdString, InferColumnDatatype(nil))
}

func TestDatatypeName(t *testing.T) {
	assert.Equal(t, "integer", DatatypeName(XsdInteger))
	assert.Equal(t, "string", DatatypeName(XsdString))
}

func TestPrefixesIsACopy(t *testing.T) {
	p := Prefixes()
	p["dcat"] = "mutated"
	assert.Equal(t, DcatNS, Prefixes()["dcat"])
}
