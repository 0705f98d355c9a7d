// Package validation wraps go-playground/validator with the rules used by
// submissions and registrations and converts its errors into
// errdefs.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"evaluator/internal/errdefs"
)

var (
	emailRe  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	mobileRe = regexp.MustCompile(`^\d{10}$`)
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Registration errors are programmer errors only; the tags are fixed.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates s. Messages overrides the default message for a field,
// keyed by its json name. Fields are reported in declaration order.
func (v *Validator) Struct(s any, messages map[string]string) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	fields := make([]errdefs.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = defaultMessage(fe)
		}
		fields = append(fields, errdefs.FieldError{Field: fe.Field(), Message: msg})
	}
	return errdefs.NewValidationError(fields...)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", fe.Field(), fe.Param())
	case "loose_email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "mobile":
		return fmt.Sprintf("%s must be 10 digits", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
