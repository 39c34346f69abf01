package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports invalid input keyed by field. It is detected
// before any mutation, so a failed request changes no state.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
