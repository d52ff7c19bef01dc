package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a request DTO against its struct tags.
func Validate(v any) error {
	return validate.Struct(v)
}
