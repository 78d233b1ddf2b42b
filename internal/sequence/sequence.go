// Package sequence provides the named sequence records that are aligned.
//
// A Record is an immutable (identifier, description, symbols) triple. No
// alphabet is enforced: any character is a valid symbol, so protein, DNA
// and arbitrary text all align the same way.
package sequence

import "unicode/utf8"

// Record represents a named sequence read from the input.
//
// Records are built once with New and never modified afterwards; every
// operation that derives a new sequence returns a new Record.
type Record struct {
	ID          string
	Description string
	Bases       string
}

// New creates a record with full metadata.
func New(id, description, bases string) *Record {
	return &Record{
		ID:          id,
		Description: description,
		Bases:       bases,
	}
}

// Len returns the number of symbols in the record.
func (r *Record) Len() int {
	return utf8.RuneCountInString(r.Bases)
}

// Symbols returns the record's symbols as a fresh slice.
func (r *Record) Symbols() []rune {
	return []rune(r.Bases)
}

// Subsequence returns the half-open symbol range [start, end) as a new record.
// An empty range is allowed.
func (r *Record) Subsequence(start, end int) (*Record, error) {
	symbols := r.Symbols()
	if start < 0 || end < start || end > len(symbols) {
		return nil, &RangeError{Start: start, End: end, Length: len(symbols)}
	}

	return New(r.ID, r.Description, string(symbols[start:end])), nil
}

// Label returns the identifier, or "sequence" for anonymous records.
func (r *Record) Label() string {
	if r.ID == "" {
		return "sequence"
	}
	return r.ID
}

// String returns a string representation of the record.
func (r *Record) String() string {
	if r.ID != "" {
		return ">" + r.ID + "\n" + r.Bases
	}
	return r.Bases
}
