package cli

import (
	"errors"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/pkg/problem"
)

// toProblem maps an error to the problem document printed on stderr.
// Errors that carry no domain sentinel come from argument parsing and are
// reported as invalid input.
func toProblem(err error) *problem.Problem {
	var p *problem.Problem
	if errors.As(err, &p) {
		return p
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return problem.ValidationError(err.Error(), verr.Fields)
	case errors.Is(err, domain.ErrOutOfRange):
		return problem.OutOfRange(err.Error())
	default:
		return problem.InvalidInput(err.Error())
	}
}
