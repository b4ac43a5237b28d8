package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single validation error for a field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRequired checks if a string field is not empty
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
		}
	}
	return nil
}

// ValidateMinLength checks that a trimmed value has at least min characters
func ValidateMinLength(field, value string, min int) *ValidationError {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least %d characters", field, min),
		}
	}
	return nil
}

// ValidateEnum checks if value is in allowed list
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")),
	}
}

// ValidateMinColumns checks that a CSV header row is wide enough for a
// positional column contract
func ValidateMinColumns(source string, header []string, min int) *ValidationError {
	if len(header) < min {
		return &ValidationError{
			Field:   source,
			Message: fmt.Sprintf("%s header has %d columns, expected at least %d", source, len(header), min),
		}
	}
	return nil
}
