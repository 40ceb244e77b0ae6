// Package healthdcat converts flat tabular metadata into RDF conforming to
// the HealthDCAT-AP profile, the health-data extension of the DCAT
// application profile for European data portals.
//
// # Architecture
//
// The module is organized as a plugin pipeline. Every processing step,
// validation, reshaping, and graph generation alike, implements one small
// contract (plugin.Plugin) and is resolved by name from a registry at run
// time. The converter package orchestrates a run: it reads the source into a
// record set, threads a payload through the configured stages, and returns
// the serialized graph together with any validation findings.
//
//	CSV source -> reader -> [validator] -> [transforms...] -> rdf_generator -> Turtle / N-Triples
//
// Built-in stages:
//
//   - validator: required-field, type, and JSON-Schema rules. Strict mode
//     aborts the run on any finding; lenient mode reports findings as
//     warnings and passes every row through.
//   - field_map: column renaming, value rewriting, static field addition
//     and removal.
//   - row_filter: predicate-based row filtering.
//   - rdf_generator: builds the HealthDCAT-AP graph (one dcat:Dataset, one
//     dcat:Distribution per row, deduplicated foaf:Agent publishers, and a
//     csvw:TableSchema describing the source columns) and serializes it.
//
// # Package Layout
//
//   - record: the tabular data model (ordered rows of column/value pairs)
//   - rdf: terms, triples, graphs, and the Turtle / N-Triples codecs
//   - vocabulary: profile namespaces, IRIs, and the column-to-property mapping
//   - plugin: the stage contract, payload, options, and registry
//   - reader: source parsing (CSV)
//   - stage/...: the built-in pipeline stages
//   - converter: the pipeline orchestrator
//   - pluginregistry: one-call registration of all built-in stages
//   - errors, metric: classified errors and Prometheus metric management
//   - cmd/healthdcat: the command line tool
//
// # Determinism
//
// Conversion output is reproducible: row order is preserved end-to-end,
// validation issues are ordered by row and rule declaration, serialization
// prefix headers are sorted, and record identifiers derived from a key field
// are stable name-based UUIDs. Running the same input with the same options
// twice yields byte-identical output.
package healthdcat
