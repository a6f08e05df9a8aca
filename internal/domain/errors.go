package domain

import (
	"errors"
	"strings"

	"github.com/blaisecz/meaningful-metrics/pkg/problem"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrOutOfRange   = errors.New("value out of range")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError is returned by the record constructors when a record
// breaks one of its construction-time rules.
type ValidationError struct {
	Record string
	Fields []problem.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid " + e.Record + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
