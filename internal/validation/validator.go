package validation

import (
	"math"
	"reflect"

	"github.com/blaisecz/meaningful-metrics/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Reject NaN and ±Inf; range tags alone let +Inf through.
	validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		default:
			return true
		}
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []problem.FieldError{{Field: "", Message: err.Error()}}
	}

	var fieldErrors []problem.FieldError
	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   toSnakeCase(err.Field()),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + err.Param()
	case "max", "lte":
		return "must be at most " + err.Param()
	case "gt":
		return "must be greater than " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "finite":
		return "must be a finite number"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts Go field names to snake_case, keeping acronyms
// together ("ID" -> "id", "MaxDailyHours" -> "max_daily_hours").
func toSnakeCase(s string) string {
	var result []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				prev := s[i-1]
				nextLower := i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
				prevUpper := prev >= 'A' && prev <= 'Z'
				if (prev >= 'a' && prev <= 'z') || (prevUpper && nextLower) {
					result = append(result, '_')
				}
			}
			result = append(result, c+'a'-'A')
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}
