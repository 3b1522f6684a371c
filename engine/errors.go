package engine

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a requested column is not declared by the view.
var ErrColumnNotFound = errors.New("column not found")

// DecodeError reports a cell that could not be decoded into []Relationship.
type DecodeError struct {
	Row    int
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q at row %d: %v", e.Column, e.Row, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingFieldError reports an exploded element lacking a requested field.
type MissingFieldError struct {
	Row     int
	Element int
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d element %d: missing field %q", e.Row, e.Element, e.Field)
}

func requireColumns(view RecordView, columns ...string) error {
	for _, c := range columns {
		if !HasColumn(view, c) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, c)
		}
	}
	return nil
}
