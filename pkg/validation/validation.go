package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	default:
		return fmt.Sprintf("validation failed: %d error(s)", len(e))
	}
}

// New returns a validator that reports fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s and converts tag failures into FieldErrors.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Translate(validationErrs)
	}
	return err
}

func Translate(errs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, FieldError{
			Field:   fieldPath(err),
			Message: message(err),
		})
	}
	return out
}

// fieldPath drops the top-level struct name: "CreateHotelRequest.amenities[2]" -> "amenities[2]".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return err.Field()
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "max":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", err.Param())
		}
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "mongodb":
		return "must be a valid id"
	case "url", "http_url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed on the '%s' rule", err.Tag())
	}
}
