package rdf

import (
	"fmt"
	"strings"

	"github.com/c360/healthdcat/errors"
)

// Supported serialization format identifiers. Format identifiers are plain
// strings and are compared case-sensitively.
const (
	FormatTurtle   = "turtle"
	FormatNTriples = "ntriples"
)

// Formats returns the supported serialization format identifiers.
func Formats() []string {
	return []string{FormatTurtle, FormatNTriples}
}

// FormatSupported reports whether the identifier names a supported format.
func FormatSupported(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

// Graph is an append-only set of triples built incrementally by the RDF
// generator. Insertion order is preserved so serialized output follows the
// order entities were asserted, and the graph is never mutated once
// serialization begins.
type Graph struct {
	triples []Triple
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add appends one triple to the graph.
func (g *Graph) Add(t Triple) {
	g.triples = append(g.triples, t)
}

// AddAll appends a sequence of triples in order.
func (g *Graph) AddAll(triples []Triple) {
	g.triples = append(g.triples, triples...)
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of the graph's triples in insertion order.
func (g *Graph) Triples() []Triple {
	return append([]Triple(nil), g.triples...)
}

// Serialize renders the graph into the requested textual format. The result
// is pure text; writing it anywhere is the caller's responsibility. Format
// choice affects only the serialization, never the graph's logical content.
func (g *Graph) Serialize(format string, prefixes map[string]string) (string, error) {
	var sb strings.Builder
	switch format {
	case FormatTurtle:
		if err := EncodeTurtle(&sb, g, prefixes); err != nil {
			return "", errors.Wrap(err, "Graph", "Serialize", "turtle encoding")
		}
	case FormatNTriples:
		if err := EncodeNTriples(&sb, g); err != nil {
			return "", errors.Wrap(err, "Graph", "Serialize", "ntriples encoding")
		}
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)",
			errors.ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}
	return sb.String(), nil
}
