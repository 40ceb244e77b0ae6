package reader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/healthdcat/errors"
	"github.com/c360/healthdcat/record"
)

func TestCSVReaderRead(t *testing.T) {
	input := "title,publisher,records\nDataset A,EHDS,100\nDataset B,,200\n"

	set, err := NewCSVReader().Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "publisher", "records"}, set.Columns)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, record.Record{"title": "Dataset A", "publisher": "EHDS", "records": "100"}, set.Rows[0])
	assert.Equal(t, record.Record{"title": "Dataset B", "publisher": "", "records": "200"}, set.Rows[1])
}

func TestCSVReaderPreservesRowOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("title\n")
	titles := []string{"z", "a", "m", "b", "q"}
	for _, title := range titles {
		sb.WriteString(title + "\n")
	}

	set, err := NewCSVReader().Read(context.Background(), strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Equal(t, len(titles), set.Len())
	for i, title := range titles {
		assert.Equal(t, title, set.Rows[i]["title"])
	}
}

func TestCSVReaderTrimsWhitespace(t *testing.T) {
	input := " title , publisher \n Dataset A , EHDS \n"

	set, err := NewCSVReader().Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "publisher"}, set.Columns)
	assert.Equal(t, "Dataset A", set.Rows[0]["title"])
}

func TestCSVReaderQuotedFields(t *testing.T) {
	input := "title,description\n\"Dataset, A\",\"multi\nline\"\n"

	set, err := NewCSVReader().Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Dataset, A", set.Rows[0]["title"])
	assert.Equal(t, "multi\nline", set.Rows[0]["description"])
}

func TestCSVReaderCustomDelimiter(t *testing.T) {
	r := &CSVReader{Comma: ';', TrimSpace: true}

	set, err := r.Read(context.Background(), strings.NewReader("title;publisher\nA;B\n"))
	require.NoError(t, err)
	assert.Equal(t, "B", set.Rows[0]["publisher"])
}

func TestCSVReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty source", ""},
		{"ragged row", "title,publisher\nonly-one-field\n"},
		{"empty column name", "title,,publisher\na,b,c\n"},
		{"duplicate column name", "title,publisher,title\na,b,c\n"},
		{"bare quote", "title\n\"broken\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVReader().Read(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrSourceRead)
		})
	}
}

func TestCSVReaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVReader().Read(ctx, strings.NewReader("title\nA\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
