// Package inputval validates request payloads using struct tags.
//
// Handlers declare an input struct with `validate` rules and a `label` tag
// for the human-facing field name, then call Validate before touching the
// store. Messages are written for end users, not developers.
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their label tag so messages read naturally.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	return v
}

// Result holds validation failures in field order.
type Result struct {
	errors []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool {
	return len(r.errors) > 0
}

// First returns the first failure message, or "" when validation passed.
func (r Result) First() string {
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[0]
}

// All returns every failure message.
func (r Result) All() []string {
	return r.errors
}

// Validate checks the struct's `validate` tags and returns user-facing
// messages for any failures.
func Validate(input any) Result {
	err := validate.Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{errors: []string{"Invalid input."}}
	}

	var r Result
	for _, fe := range verrs {
		r.errors = append(r.errors, message(fe))
	}
	return r
}

// message converts a single field error into a user-facing sentence.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

// IsValidEmail reports whether s is a plausible email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}
