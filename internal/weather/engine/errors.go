package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is returned when the input cannot be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedRecord is returned when a record does not match "<name>;<value>".
	ErrMalformedRecord = errors.New("malformed record")
	// ErrResourceExhausted is returned when a table would grow past its station limit.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// RecordError locates a malformed record in the source.
type RecordError struct {
	Start  int64 // offset of the first byte of the record
	End    int64 // offset just past the record, terminator excluded
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at bytes [%d, %d): %s", e.Start, e.End, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}
