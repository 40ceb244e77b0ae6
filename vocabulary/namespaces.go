// Package vocabulary provides the HealthDCAT-AP vocabulary: namespace
// constants, class and property IRIs, the default field-to-property mapping,
// and XSD datatype inference for tabular values.
package vocabulary

// Namespace IRIs for the vocabularies used by the profile.
const (
	DcatNS       = "http://www.w3.org/ns/dcat#"
	DctNS        = "http://purl.org/dc/terms/"
	FoafNS       = "http://xmlns.com/foaf/0.1/"
	VcardNS      = "http://www.w3.org/2006/vcard/ns#"
	SchemaNS     = "http://schema.org/"
	RdfsNS       = "http://www.w3.org/2000/01/rdf-schema#"
	RdfNS        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XsdNS        = "http://www.w3.org/2001/XMLSchema#"
	CsvwNS       = "http://www.w3.org/ns/csvw#"
	HealthdcatNS = "https://health.ec.europa.eu/healthdcat-ap/"
)

// Prefixes returns the prefix label to namespace mapping used for Turtle
// serialization. The returned map is a fresh copy each call.
func Prefixes() map[string]string {
	return map[string]string{
		"dcat":       DcatNS,
		"dct":        DctNS,
		"foaf":       FoafNS,
		"vcard":      VcardNS,
		"schema":     SchemaNS,
		"rdfs":       RdfsNS,
		"rdf":        RdfNS,
		"xsd":        XsdNS,
		"csvw":       CsvwNS,
		"healthdcat": HealthdcatNS,
	}
}

// Class IRIs for the profile's entity types.
const (
	// ClassDataset is the DCAT dataset class.
	ClassDataset = DcatNS + "Dataset"
	// ClassDistribution is the DCAT distribution class; one is minted per row.
	ClassDistribution = DcatNS + "Distribution"
	// ClassAgent is the FOAF agent class used for publishers.
	ClassAgent = FoafNS + "Agent"
	// ClassTableSchema is the CSVW table schema describing source columns.
	ClassTableSchema = CsvwNS + "TableSchema"
	// ClassColumn is the CSVW column class.
	ClassColumn = CsvwNS + "Column"
)

// Property IRIs used by the default profile mapping.
const (
	RdfType = RdfNS + "type"

	DctTitle       = DctNS + "title"
	DctDescription = DctNS + "description"
	DctPublisher   = DctNS + "publisher"
	DctLicense     = DctNS + "license"
	DctIssued      = DctNS + "issued"
	DctModified    = DctNS + "modified"
	DctLanguage    = DctNS + "language"
	DctFormat      = DctNS + "format"
	DctIdentifier  = DctNS + "identifier"

	DcatKeyword      = DcatNS + "keyword"
	DcatTheme        = DcatNS + "theme"
	DcatAccessURL    = DcatNS + "accessURL"
	DcatDownloadURL  = DcatNS + "downloadURL"
	DcatMediaType    = DcatNS + "mediaType"
	DcatContactPoint = DcatNS + "contactPoint"
	DcatDistribution = DcatNS + "distribution"

	FoafName = FoafNS + "name"

	RdfsLabel = RdfsNS + "label"

	SchemaNumberOfItems = SchemaNS + "numberOfItems"

	CsvwTableSchema = CsvwNS + "tableSchema"
	CsvwColumn      = CsvwNS + "column"
	CsvwName        = CsvwNS + "name"
	CsvwDatatype    = CsvwNS + "datatype"

	// HealthdcatHasHealthCategory tags a dataset with its health category.
	HealthdcatHasHealthCategory = HealthdcatNS + "hasHealthCategory"
)

// XSD datatype IRIs assigned to inferred literal types.
const (
	XsdString  = XsdNS + "string"
	XsdBoolean = XsdNS + "boolean"
	XsdInteger = XsdNS + "integer"
	XsdDecimal = XsdNS + "decimal"
	XsdDate    = XsdNS + "date"
)
