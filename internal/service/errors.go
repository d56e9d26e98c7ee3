// Package service implements the business rules on top of the storage
// repositories: input validation, the lock gate, trash lifecycle, and
// category tree policies.
package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports rejected input. The message is safe to show to the
// caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LockedError is returned when a gated mutation touches one or more locked
// ideas. The whole batch is rejected; no partial writes happen.
type LockedError struct {
	IDs []int64
}

func (e *LockedError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("ideas locked: %s", strings.Join(parts, ", "))
}
