package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/c360/healthdcat/errors"
)

// EncodeNTriples writes the graph in N-Triples syntax, one statement per
// line, in insertion order.
func EncodeNTriples(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for _, t := range g.triples {
		line := fmt.Sprintf("%s <%s> %s .\n",
			renderTerm(t.Subject), t.Predicate.Value, renderNTriplesObject(t.Object))
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func renderNTriplesObject(t Term) string {
	l, ok := t.(Literal)
	if !ok {
		return renderTerm(t)
	}
	quoted := "\"" + escapeLiteral(l.Lexical) + "\""
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype.Value != "" && l.Datatype.Value != xsdString {
		return quoted + "^^<" + l.Datatype.Value + ">"
	}
	return quoted
}

// DecodeNTriples parses N-Triples text into a slice of triples. It accepts
// the subset of the grammar this package emits (IRIs, blank nodes, plain,
// language-tagged and datatyped literals) which is enough for round-trip
// verification of generated graphs.
func DecodeNTriples(r io.Reader) ([]Triple, error) {
	var triples []Triple
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := &ntParser{input: line}
		subject, err := p.parseTerm()
		if err != nil {
			return nil, decodeErr(lineNo, err)
		}
		if subject.Kind() == TermLiteral {
			return nil, decodeErr(lineNo, fmt.Errorf("subject must be an IRI or blank node"))
		}
		p.skipSpace()
		predicate, err := p.parseTerm()
		if err != nil {
			return nil, decodeErr(lineNo, err)
		}
		predIRI, ok := predicate.(IRI)
		if !ok {
			return nil, decodeErr(lineNo, fmt.Errorf("predicate must be an IRI"))
		}
		p.skipSpace()
		object, err := p.parseTerm()
		if err != nil {
			return nil, decodeErr(lineNo, err)
		}
		p.skipSpace()
		if !p.consume('.') {
			return nil, decodeErr(lineNo, fmt.Errorf("missing terminating '.'"))
		}

		triples = append(triples, Triple{Subject: subject, Predicate: predIRI, Object: object})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "NTriples", "Decode", "read input")
	}
	return triples, nil
}

func decodeErr(line int, err error) error {
	return fmt.Errorf("%w: ntriples line %d: %v", errors.ErrParsingFailed, line, err)
}

type ntParser struct {
	input string
	pos   int
}

func (p *ntParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *ntParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *ntParser) parseTerm() (Term, error) {
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of statement")
	}
	switch p.input[p.pos] {
	case '<':
		return p.parseIRI()
	case '_':
		return p.parseBlankNode()
	case '"':
		return p.parseLiteral()
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", p.input[p.pos], p.pos)
	}
}

func (p *ntParser) parseIRI() (IRI, error) {
	p.pos++ // consume '<'
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return IRI{}, fmt.Errorf("unterminated IRI")
	}
	iri := IRI{Value: p.input[p.pos : p.pos+end]}
	p.pos += end + 1
	return iri, nil
}

func (p *ntParser) parseBlankNode() (BlankNode, error) {
	if !strings.HasPrefix(p.input[p.pos:], "_:") {
		return BlankNode{}, fmt.Errorf("malformed blank node")
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ' ' && p.input[p.pos] != '\t' {
		p.pos++
	}
	if p.pos == start {
		return BlankNode{}, fmt.Errorf("empty blank node label")
	}
	return BlankNode{ID: p.input[start:p.pos]}, nil
}

func (p *ntParser) parseLiteral() (Literal, error) {
	p.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.input) {
			return Literal{}, fmt.Errorf("unterminated literal")
		}
		c := p.input[p.pos]
		if c == '"' {
			p.pos++
			break
		}
		if c == '\\' {
			if p.pos+1 >= len(p.input) {
				return Literal{}, fmt.Errorf("dangling escape in literal")
			}
			p.pos++
			switch p.input[p.pos] {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return Literal{}, fmt.Errorf("unsupported escape \\%c", p.input[p.pos])
			}
			p.pos++
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}

	lit := Literal{Lexical: sb.String()}
	if p.pos < len(p.input) && p.input[p.pos] == '@' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != ' ' && p.input[p.pos] != '\t' {
			p.pos++
		}
		lit.Lang = p.input[start:p.pos]
		if lit.Lang == "" {
			return Literal{}, fmt.Errorf("empty language tag")
		}
		return lit, nil
	}
	if strings.HasPrefix(p.input[p.pos:], "^^") {
		p.pos += 2
		if p.pos >= len(p.input) || p.input[p.pos] != '<' {
			return Literal{}, fmt.Errorf("malformed datatype")
		}
		dt, err := p.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		lit.Datatype = dt
	}
	return lit, nil
}
