// Package rdf provides the triple graph model and textual serializers used by
// the RDF generation stage.
//
// # Model
//
// Terms follow the RDF abstract syntax: IRI, BlankNode, and Literal implement
// the Term interface, and a Triple is one (subject, predicate, object)
// statement. A Graph is an append-only collection of triples; insertion order
// is preserved so serialized output is deterministic and follows the order in
// which entities were asserted.
//
// # Serialization
//
// Two formats are supported: "turtle" (prefix-compacted, grouped by subject)
// and "ntriples" (one full statement per line). Serializers are pure: they
// write to the supplied writer or return a string and never touch storage.
// DecodeNTriples parses the N-Triples subset this package emits, which lets
// tests verify that serialized graphs round-trip to the same triple set.
//
// # Usage
//
//	g := rdf.NewGraph()
//	g.Add(rdf.Triple{
//	    Subject:   rdf.IRI{Value: "http://example.org/ds"},
//	    Predicate: rdf.IRI{Value: vocabulary.DctTitle},
//	    Object:    rdf.Literal{Lexical: "Health Dataset"},
//	})
//	text, err := g.Serialize(rdf.FormatTurtle, vocabulary.Prefixes())
package rdf
