package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a required member missing from a request body.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing `%s` in request body", e.Field)
}

type validatorValuer interface {
	validatorValue() any
}

func (f Field[T]) validatorValue() any {
	if !f.Valid {
		return nil
	}
	return f.Value
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if f, ok := field.Interface().(validatorValuer); ok {
			return f.validatorValue()
		}
		return nil
	}, Field[string]{}, Field[int64]{}, Field[[]int64]{})
	return v
}

// Validate checks the validate tags of a request body and reports the first
// failing member as a *ValidationError.
func Validate(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field()}
	}
	return err
}
