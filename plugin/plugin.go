package plugin

import (
	"context"

	"github.com/c360/healthdcat/record"
)

// Plugin is the capability interface every pipeline stage implements.
// A stage receives the current payload and its options, and returns a new
// payload representing the transformed state. Stages must not mutate the
// input payload in place; callers may retain a reference to the original.
// Failures surface as classified errors from the errors package and are
// labeled with the stage name by the orchestrator.
type Plugin interface {
	// Name returns the registry name of the plugin.
	Name() string

	// Execute runs the stage against the payload.
	Execute(ctx context.Context, payload *Payload, opts Options) (*Payload, error)
}

// Issue is one validation finding: which row and field violated which rule.
// Issues are ordered by row, then by rule declaration order, so sequences are
// reproducible across runs.
type Issue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Payload is the data contract threaded between stages. Each stage consumes
// the previous stage's payload and produces the next one. Records carry the
// row data, Issues accumulates validation findings across stages, and Output
// holds the serialized graph once the generator has run.
type Payload struct {
	Records record.Set
	Issues  []Issue
	Output  string
}

// NewPayload wraps a record set in a fresh payload.
func NewPayload(records record.Set) *Payload {
	return &Payload{Records: records}
}

// With returns a copy of the payload carrying the given record set, keeping
// accumulated issues. This is the usual way for a transform to emit its
// result without touching the input.
func (p *Payload) With(records record.Set) *Payload {
	return &Payload{
		Records: records,
		Issues:  append([]Issue(nil), p.Issues...),
		Output:  p.Output,
	}
}

// WithIssues returns a copy of the payload with additional issues appended.
func (p *Payload) WithIssues(issues ...Issue) *Payload {
	out := p.With(p.Records)
	out.Issues = append(out.Issues, issues...)
	return out
}
