// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Dataset errors.
	ErrNoDataFile        = errors.New("data file not found")
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// Record validation errors.
	ErrMissingAmount  = errors.New("missing transaction amount")
	ErrInvalidIssueID = errors.New("invalid issue id type")
)

// RecordError reports a validation failure for a single record, identified by
// its zero-based position in the input sequence.
type RecordError struct {
	Err   error
	Index int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError wraps err with the position of the offending record.
func NewRecordError(index int, err error) error {
	return &RecordError{Index: index, Err: err}
}
