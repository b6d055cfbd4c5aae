package http

import (
	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to echo.Validator so that
// handlers can call ctx.Validate on bound request bodies.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
