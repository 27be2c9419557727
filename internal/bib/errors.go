package bib

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is; the typed errors below unwrap to them.
var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDuplicateKey        = errors.New("duplicate key")
)

// MalformedRecordError reports a tuple with the wrong arity or a field of the
// wrong shape.
type MalformedRecordError struct {
	Kind   string // table, e.g. "paper" or "venue of icassp"
	Index  int    // 0-based position within the table
	Field  string // empty for arity errors
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s #%d: field %s: %s", e.Kind, e.Index+1, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s #%d: %s", e.Kind, e.Index+1, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// UnresolvedReferenceError reports an identifier that names no record.
type UnresolvedReferenceError struct {
	Kind  string // referring table
	Index int
	Table string // table the key was looked up in
	Key   string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s #%d: unknown %s %q", e.Kind, e.Index+1, e.Table, e.Key)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// DuplicateKeyError reports two records sharing a key within one table.
type DuplicateKeyError struct {
	Table string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key %q", e.Table, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
