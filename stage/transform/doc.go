// Package transform provides the optional reshaping stages that run between
// validation and RDF generation. The field_map stage renames, rewrites, adds,
// and removes columns; the row_filter stage drops rows that do not match a
// predicate. Both stages operate on a clone of the incoming record set and
// preserve the relative order of surviving rows.
package transform
