package problem

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewAndWithErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "hours", Message: "must be at least 0"}}
	p := New("validation-error", "Validation Error", "details").WithErrors(fieldErrors)

	if got, want := p.Type, BaseURI+":validation-error"; got != want {
		t.Fatalf("unexpected type: got %q want %q", got, want)
	}
	if len(p.Errors) != 1 || p.Errors[0] != fieldErrors[0] {
		t.Fatalf("errors not set: %+v", p.Errors)
	}
}

func TestProblemError(t *testing.T) {
	tests := []struct {
		name string
		p    *Problem
		want string
	}{
		{
			name: "title only",
			p:    New("x", "Something", ""),
			want: "Something",
		},
		{
			name: "with detail",
			p:    OutOfRange("engagement must be between 0.0 and 1.0, got -0.1"),
			want: "Out Of Range: engagement must be between 0.0 and 1.0, got -0.1",
		},
		{
			name: "with field errors",
			p: ValidationError("invalid goal", []FieldError{
				{Field: "id", Message: "is required"},
				{Field: "name", Message: "is required"},
			}),
			want: "Validation Error: invalid goal (id is required; name is required)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProblemWrite(t *testing.T) {
	var buf bytes.Buffer
	p := InvalidInput("negative hours")
	if err := p.Write(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded Problem
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Title != "Invalid Input" || decoded.Detail != "negative hours" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
	if decoded.Type != BaseURI+":invalid-input" {
		t.Fatalf("unexpected type: %s", decoded.Type)
	}
}
