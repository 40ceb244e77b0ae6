package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Well-known datatype IRIs the Turtle encoder can abbreviate to bare tokens.
const (
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
	xsdString  = "http://www.w3.org/2001/XMLSchema#string"
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

// EncodeTurtle writes the graph in Turtle syntax. Triples are grouped by
// subject in first-appearance order, with one predicate-object pair per line.
// The prefixes map (prefix label -> namespace IRI) drives both the @prefix
// header and IRI compaction; prefix labels are emitted in sorted order so the
// output is reproducible.
func EncodeTurtle(w io.Writer, g *Graph, prefixes map[string]string) error {
	bw := bufio.NewWriter(w)

	labels := make([]string, 0, len(prefixes))
	for label := range prefixes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if _, err := fmt.Fprintf(bw, "@prefix %s: <%s> .\n", label, prefixes[label]); err != nil {
			return err
		}
	}
	if len(labels) > 0 {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	// Group triples by subject, preserving first-appearance order.
	var order []string
	groups := make(map[string][]Triple)
	subjects := make(map[string]Term)
	for _, t := range g.triples {
		key := t.Subject.String()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
			subjects[key] = t.Subject
		}
		groups[key] = append(groups[key], t)
	}

	for i, key := range order {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		group := groups[key]
		if _, err := bw.WriteString(renderSubject(subjects[key], prefixes)); err != nil {
			return err
		}
		for j, t := range group {
			sep := " ;"
			if j == len(group)-1 {
				sep = " ."
			}
			line := fmt.Sprintf("%s %s%s\n",
				renderPredicate(t.Predicate, prefixes),
				renderObject(t.Object, prefixes),
				sep)
			if j == 0 {
				line = " " + line
			} else {
				line = "    " + line
			}
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

func renderSubject(t Term, prefixes map[string]string) string {
	if iri, ok := t.(IRI); ok {
		return compactIRI(iri, prefixes)
	}
	return t.String()
}

func renderPredicate(p IRI, prefixes map[string]string) string {
	if p.Value == rdfType {
		return "a"
	}
	return compactIRI(p, prefixes)
}

func renderObject(t Term, prefixes map[string]string) string {
	switch o := t.(type) {
	case IRI:
		return compactIRI(o, prefixes)
	case BlankNode:
		return o.String()
	case Literal:
		return renderLiteral(o, prefixes)
	default:
		return t.String()
	}
}

func renderLiteral(l Literal, prefixes map[string]string) string {
	switch l.Datatype.Value {
	case xsdInteger, xsdDecimal, xsdBoolean:
		// Bare tokens only for lexicals the Turtle numeric grammar accepts;
		// anything else stays a quoted typed literal.
		if isBareToken(l.Lexical, l.Datatype.Value) {
			return l.Lexical
		}
	}

	quoted := "\"" + escapeLiteral(l.Lexical) + "\""
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype.Value != "" && l.Datatype.Value != xsdString {
		return quoted + "^^" + compactIRI(l.Datatype, prefixes)
	}
	return quoted
}

// isBareToken reports whether the lexical form is its own valid Turtle token
// for the given datatype: true/false for booleans, signed digits for
// integers, and a dotted digit form for decimals. A decimal lexical without a
// dot is not bare-safe because a parser would read it back as xsd:integer.
func isBareToken(lexical, datatype string) bool {
	switch datatype {
	case xsdBoolean:
		return lexical == "true" || lexical == "false"
	case xsdInteger:
		return isBareNumber(lexical, false)
	case xsdDecimal:
		return isBareNumber(lexical, true)
	}
	return false
}

func isBareNumber(s string, wantDot bool) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	digits := 0
	dots := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	if digits == 0 {
		return false
	}
	if wantDot {
		// Turtle DECIMAL requires digits after the single dot.
		return dots == 1 && s[len(s)-1] != '.'
	}
	return dots == 0
}

// compactIRI renders an IRI as prefix:local when a registered namespace
// matches and the local part is a safe prefixed name, falling back to <iri>.
func compactIRI(iri IRI, prefixes map[string]string) string {
	best := ""
	bestLabel := ""
	for label, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri.Value, ns) {
			continue
		}
		// Prefer the longest matching namespace.
		if len(ns) > len(best) {
			best = ns
			bestLabel = label
		}
	}
	if best != "" {
		local := iri.Value[len(best):]
		if isSafeLocalName(local) {
			return bestLabel + ":" + local
		}
	}
	return "<" + iri.Value + ">"
}

// isSafeLocalName accepts only simple local names so the encoder never emits
// a prefixed name that needs escaping. Anything else stays a full IRI.
func isSafeLocalName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '_' || r == '-' {
			continue
		}
		return false
	}
	return true
}

// escapeLiteral escapes a lexical form for inclusion in a double-quoted string.
func escapeLiteral(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func renderTerm(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "<" + v.Value + ">"
	case BlankNode:
		return v.String()
	case Literal:
		return v.String()
	default:
		return t.String()
	}
}
