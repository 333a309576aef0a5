package common

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid request field in a 422 response.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationDetails flattens validator errors into field-level details.
// Non-validator errors yield nil so callers can fall back to a generic body.
func ValidationDetails(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
