package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAuditNotFound indicates that no audit owned by the caller matches the id
	ErrAuditNotFound = errors.New("audit not found")

	// ErrAuditApproved indicates a mutation or delete attempted on an approved record
	ErrAuditApproved = errors.New("audit is approved and can no longer be modified")

	// ErrAlreadyApproved indicates an approve attempted on an already approved record
	ErrAlreadyApproved = errors.New("audit is already approved")

	// ErrMissingSummary indicates an approve attempted without a summary
	ErrMissingSummary = errors.New("audit cannot be approved without a summary")

	// ErrDuplicateOrderNumber indicates the order number is already taken by the same user
	ErrDuplicateOrderNumber = errors.New("audit order number is already taken")
)

// ValidationError carries per-field violation messages for bad input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// InvalidSortColumnError is returned when a sort column is not on the
// allow-list. The column name would otherwise reach the query builder, so
// this is rejected before any query is issued.
type InvalidSortColumnError struct {
	Column string
}

func (e *InvalidSortColumnError) Error() string {
	return fmt.Sprintf("invalid sort column: %q", e.Column)
}

// CreationError wraps a backend failure during record creation.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create audit: %v", e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
