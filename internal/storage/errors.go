package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-entity operations that reference an id
// with no matching row. Batch operations skip absent ids silently instead.
var ErrNotFound = errors.New("not found")

// InvalidFieldError is returned when a generic field patch names a column
// outside the mutable allow-list. Field names are never interpolated into
// SQL before this check passes.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid idea field %q", e.Field)
}
