package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrRecordNotFound = errors.New("record not found")

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required records a "is missing" error for field when value is empty.
func (v *Validator) Required(value any, field string) {
	v.Check(!IsEmpty(value), field, "is missing")
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}

// IsEmpty reports whether value is nil, a nil pointer, or blank once rendered as a string.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	}

	return strings.TrimSpace(fmt.Sprint(value)) == ""
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidateStruct checks the `validate` tags of s and folds failures into the validator.
func (v *Validator) ValidateStruct(s any) {
	err := structValidator.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError("body", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			v.AddError(fe.Field(), "is missing")
		default:
			v.AddError(fe.Field(), fmt.Sprintf("failed the %q check", fe.Tag()))
		}
	}
}
