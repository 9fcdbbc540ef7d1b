package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/eprofos/eprofos-api/internal/pkg/validation"
)

// RegisterCustomValidators attaches domain validation tags to gin's
// binding validator so request DTOs can use them directly.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return validation.IsValidSlug(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("siret", func(fl validator.FieldLevel) bool {
		return validation.IsValidSiret(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
