package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// BindingError converts a gin binding failure into a ValidationError.
func BindingError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldViolation{Field: jsonName(fe.Field()), Message: tagMessage(fe)})
		}
		return NewValidationError(details...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(FieldViolation{Field: field, Message: fmt.Sprintf("cannot be a JSON %s", typeErr.Value)})
	}

	return NewValidationError(FieldViolation{Field: "body", Message: "must be a valid JSON object"})
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}
