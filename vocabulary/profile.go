package vocabulary

import (
	"strconv"
	"strings"
	"time"
)

// FieldPublisher is the column the generator treats as an agent reference
// rather than a plain literal. It has no entry in the default mapping because
// its value mints a foaf:Agent entity linked via dct:publisher.
const FieldPublisher = "publisher"

// defaultFieldMapping maps well-known column names to profile property IRIs.
// Column names are matched after lowercasing and trimming.
var defaultFieldMapping = map[string]string{
	"title":           DctTitle,
	"description":     DctDescription,
	"license":         DctLicense,
	"identifier":      DctIdentifier,
	"issued":          DctIssued,
	"modified":        DctModified,
	"language":        DctLanguage,
	"format":          DctFormat,
	"media_type":      DcatMediaType,
	"keyword":         DcatKeyword,
	"keywords":        DcatKeyword,
	"theme":           DcatTheme,
	"access_url":      DcatAccessURL,
	"download_url":    DcatDownloadURL,
	"contact_point":   DcatContactPoint,
	"health_category": HealthdcatHasHealthCategory,
}

// DefaultFieldMapping returns a copy of the profile's default column-name to
// property-IRI mapping.
func DefaultFieldMapping() map[string]string {
	out := make(map[string]string, len(defaultFieldMapping))
	for k, v := range defaultFieldMapping {
		out[k] = v
	}
	return out
}

// PropertyFor resolves a column name to a property IRI. Overrides supplied by
// the caller win over the default profile mapping. The boolean reports
// whether any mapping matched.
func PropertyFor(field string, overrides map[string]string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(field))
	if overrides != nil {
		if iri, ok := overrides[key]; ok {
			return iri, true
		}
		if iri, ok := overrides[field]; ok {
			return iri, true
		}
	}
	iri, ok := defaultFieldMapping[key]
	return iri, ok
}

// IsURLProperty reports whether values of the property are resource
// references and should be asserted as IRIs rather than literals.
func IsURLProperty(property string) bool {
	switch property {
	case DcatAccessURL, DcatDownloadURL, DctLicense, DcatTheme:
		return true
	}
	return false
}

// DatatypeForValue infers the XSD datatype IRI for a single lexical value.
// The inference order matches the profile: boolean, integer, decimal, date,
// and finally string. Decimal is only inferred for plain dotted-digit
// lexicals; forms like Inf, NaN, exponents, and hex floats stay strings so
// serialized output never carries a numeric type the lexical cannot back.
func DatatypeForValue(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return XsdString
	}
	switch strings.ToLower(v) {
	case "true", "false":
		return XsdBoolean
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return XsdInteger
	}
	if isDecimalLexical(v) {
		return XsdDecimal
	}
	if _, err := time.Parse("2006-01-02", v); err == nil {
		return XsdDate
	}
	return XsdString
}

// isDecimalLexical accepts an optional sign, digits, one decimal point, and
// at least one fraction digit. This is the intersection of the XSD decimal
// and Turtle DECIMAL grammars, deliberately narrower than ParseFloat.
func isDecimalLexical(v string) bool {
	if v == "" {
		return false
	}
	if v[0] == '+' || v[0] == '-' {
		v = v[1:]
	}
	intPart, fracPart, found := strings.Cut(v, ".")
	if !found || fracPart == "" {
		return false
	}
	return allDigits(intPart) && allDigits(fracPart)
}

// allDigits reports whether s contains only ASCII digits. An empty string is
// allowed so ".5" stays a valid decimal lexical.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// InferColumnDatatype infers a column's XSD datatype from the first non-empty
// value, defaulting to string for empty columns.
func InferColumnDatatype(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return DatatypeForValue(v)
		}
	}
	return XsdString
}

// DatatypeName returns the short local name of an XSD datatype IRI, as used
// in csvw:datatype values ("integer", "string", ...).
func DatatypeName(datatype string) string {
	return strings.TrimPrefix(datatype, XsdNS)
}
