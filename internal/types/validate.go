package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// enumerated is implemented by every string enumeration in this package.
type enumerated interface {
	IsValid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumerated)
		return ok && e.IsValid()
	})
	v.RegisterStructValidation(validateProfileLocation, UserProfile{})
	return v
}

// validateProfileLocation requires a state name when the scope is State Specific.
func validateProfileLocation(sl validator.StructLevel) {
	p := sl.Current().Interface().(UserProfile)
	if p.LocationScope == ScopeStateSpecific && strings.TrimSpace(p.TargetState) == "" {
		sl.ReportError(p.TargetState, "TargetState", "TargetState", "required_for_state_scope", "")
	}
}

// FieldErrors flattens validator errors into "Field: tag" strings for user-facing messages.
func FieldErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, fe.Field()+": "+fe.Tag())
	}
	return out
}
