package infrastructures

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safatanc/promotion-core/internal/app/errors"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: validate,
	}
}

// Validate checks struct tags and reports the first failing field by its
// json name.
func (v *Validator) Validate(i interface{}) error {
	if i == nil || (reflect.ValueOf(i).Kind() == reflect.Ptr && reflect.ValueOf(i).IsNil()) {
		return errors.NewValidationError("Invalid request body")
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		return errors.NewValidationError("invalid " + fieldErr.Field() + ": failed on " + fieldErr.Tag())
	}
	return errors.NewValidationError(err.Error())
}
