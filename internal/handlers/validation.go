package handlers

import (
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "El campo " + fe.Field() + " es obligatorio"
	case "email":
		return "Formato de email inválido"
	case "min":
		return "El campo " + fe.Field() + " debe ser como mínimo " + fe.Param()
	case "max":
		return "El campo " + fe.Field() + " debe ser como máximo " + fe.Param()
	case "oneof":
		return "El campo " + fe.Field() + " debe ser uno de: " + fe.Param()
	case "url":
		return "Formato de URL inválido"
	default:
		return "El campo " + fe.Field() + " es inválido"
	}
}
