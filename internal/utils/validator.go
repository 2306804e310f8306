package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
}
