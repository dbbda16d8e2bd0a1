package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studycompanion/study-service/internal/models"
)

// Validator wraps the struct validator with the custom rules every
// handler shares. The subject rule is registered exactly once so no
// handler re-derives the enum's value set.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// Validate checks struct tags on s.
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("subject", validateSubject)

	// Report field names from json tags for readable error details.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateSubject(fl validator.FieldLevel) bool {
	return models.Subject(fl.Field().String()).IsValid()
}
