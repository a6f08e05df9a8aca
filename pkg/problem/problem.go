package problem

import (
	"encoding/json"
	"io"
	"strings"
)

const BaseURI = "urn:meaningful-metrics:problem"

// Problem is an RFC 9457 style problem document. It doubles as an error so
// it can travel through ordinary error returns before being written out.
type Problem struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return f.Field + " " + f.Message
}

// New creates a new Problem
func New(problemType, title, detail string) *Problem {
	return &Problem{
		Type:   BaseURI + ":" + problemType,
		Title:  title,
		Detail: detail,
	}
}

// WithErrors adds field errors to the problem
func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

func (p *Problem) Error() string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Detail != "" {
		b.WriteString(": ")
		b.WriteString(p.Detail)
	}
	for i, fe := range p.Errors {
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(fe.String())
		if i == len(p.Errors)-1 {
			b.WriteString(")")
		}
	}
	return b.String()
}

// Write encodes the problem as indented JSON.
func (p *Problem) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Common problem constructors

func InvalidInput(detail string) *Problem {
	return New("invalid-input", "Invalid Input", detail)
}

func OutOfRange(detail string) *Problem {
	return New("out-of-range", "Out Of Range", detail)
}

func ValidationError(detail string, errors []FieldError) *Problem {
	return New("validation-error", "Validation Error", detail).WithErrors(errors)
}

func InternalError(detail string) *Problem {
	return New("internal-error", "Internal Error", detail)
}
