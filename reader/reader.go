// Package reader defines the source boundary of the conversion pipeline:
// turning a raw byte stream into an ordered record set. The pipeline core
// consumes only the Reader contract; the CSV implementation here is the
// default collaborator wired in by the CLI.
package reader

import (
	"context"
	"io"

	"github.com/c360/healthdcat/record"
)

// Reader converts a source byte stream into an ordered sequence of flat
// records. Implementations fail with an error wrapping errors.ErrSourceRead
// on malformed or unreadable input. Row order in the returned set must match
// source order.
type Reader interface {
	Read(ctx context.Context, src io.Reader) (record.Set, error)
}
