// Package record defines the flat tabular data model threaded through the
// conversion pipeline. A Record maps column names to string values; a Set is
// an ordered sequence of Records plus the column declaration order from the
// source. Sets exist only for the duration of one conversion call.
package record

// Record is one flat row: a mapping from column name to scalar string value.
// An absent key and an empty value are both treated as "no value" by
// downstream stages.
type Record map[string]string

// Get returns the value for a column and whether the column is present.
func (r Record) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set is an ordered sequence of Records. Row order reflects source order and
// is preserved end-to-end unless a transform stage explicitly reorders or
// filters. Columns preserves the declaration order of the source header,
// which validation ordering and the generated table schema depend on.
type Set struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// Len returns the number of rows.
func (s Set) Len() int {
	return len(s.Rows)
}

// Clone returns a deep copy of the set. Stages that reshape records operate
// on a clone so the caller's view of the input is never mutated in place.
func (s Set) Clone() Set {
	out := Set{
		Columns: append([]string(nil), s.Columns...),
		Rows:    make([]Record, len(s.Rows)),
	}
	for i, row := range s.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// HasColumn reports whether the set declares the given column.
func (s Set) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declaration order if not already present.
func (s *Set) AddColumn(name string) {
	if !s.HasColumn(name) {
		s.Columns = append(s.Columns, name)
	}
}

// RemoveColumn drops a column from the declaration order. Row values are left
// to the caller; a stage removing a column removes its values too.
func (s *Set) RemoveColumn(name string) {
	filtered := s.Columns[:0]
	for _, c := range s.Columns {
		if c != name {
			filtered = append(filtered, c)
		}
	}
	s.Columns = filtered
}
