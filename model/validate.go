package model

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is a validation failure on a single form field.
type FieldError struct {
	Field   string
	Message string
}

// messages maps validation tags to the text shown next to the field.
var messages = map[string]string{
	"required":  "Required",
	"email":     "Invalid email address",
	"number":    "Digits only",
	"uuid":      "Invalid customer id",
	"notfuture": "Cannot be in the future",
}

type nowKey struct{}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their model state key: the "field" tag or the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	if err := v.RegisterValidationCtx("notfuture", notFuture); err != nil {
		panic(err)
	}
	return v
}

// notFuture rejects dates after the time carried by ctx.
func notFuture(ctx context.Context, fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now, ok := ctx.Value(nowKey{}).(time.Time)
	if !ok {
		now = time.Now()
	}
	return !t.After(now)
}

// Validate checks the add form.
func (vm AddCustomerViewModel) Validate(now time.Time) []FieldError {
	return validateStruct(vm, now)
}

// Validate checks the edit form.
func (vm UpdateCustomerViewModel) Validate(now time.Time) []FieldError {
	return validateStruct(vm, now)
}

func validateStruct(vm any, now time.Time) []FieldError {
	err := validate.StructCtx(context.WithValue(context.Background(), nowKey{}, now), vm)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		msg, ok := messages[e.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
