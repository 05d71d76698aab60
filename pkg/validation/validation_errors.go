package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-friendly Spanish labels
var FieldLabels = map[string]string{
	"nombre":    "Nombre",
	"apellidos": "Apellidos",
	"correo":    "Correo electrónico",
	"mensaje":   "Mensaje",
}

// FieldError describes one violated constraint on one field
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Describe converts validator.ValidationErrors into FieldErrors.
// Any other error becomes a single entry without a field.
func Describe(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Rule: "invalid", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   e.Field(),
			Rule:    e.Tag(),
			Param:   e.Param(),
			Message: formatSingleError(e),
		})
	}
	return out
}

// TypeMismatch describes a field whose JSON value has the wrong type,
// e.g. a number where a string was expected
func TypeMismatch(field, expected string) FieldError {
	return FieldError{
		Field:   field,
		Rule:    "type",
		Param:   expected,
		Message: fmt.Sprintf("%s: Debe ser de tipo %s", getFieldLabel(field), expected),
	}
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Campo obligatorio", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Mínimo %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: Mínimo %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Máximo %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: Máximo %s", label, param)

	case "email":
		return fmt.Sprintf("%s: Formato de correo no válido", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: Validación fallida (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
