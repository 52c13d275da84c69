package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	phoneRegex    = regexp.MustCompile(`^0\d{9}$`)
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

func CreateRequestValidator() *RequestValidator {
	v := validator.New()

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// FieldErrors flattens validator errors into field/tag pairs for the response body.
func FieldErrors(err error) []map[string]string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make([]map[string]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, map[string]string{
			"field": fe.Field(),
			"tag":   fe.Tag(),
		})
	}

	return fields
}
