package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Tags  []string `json:"tags" validate:"omitempty,max=2,dive,required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	v := New()
	neg := -1.0

	err := Struct(v, sample{Name: "toolong", Tags: []string{"a", ""}, Price: &neg})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T %v", err, err)
	}

	got := map[string]string{}
	for _, fe := range fieldErrs {
		got[fe.Field] = fe.Message
	}
	want := map[string]string{
		"name":    "must be at most 5 characters",
		"tags[1]": "is required",
		"price":   "must be greater than or equal to 0",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	zero := 0.0
	if err := Struct(New(), sample{Name: "ok", Price: &zero}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFieldErrors_Error(t *testing.T) {
	one := FieldErrors{{Field: "name", Message: "is required"}}
	if one.Error() != "name: is required" {
		t.Errorf("Error() = %q", one.Error())
	}
	two := append(one, FieldError{Field: "price", Message: "is required"})
	if two.Error() != "validation failed: 2 error(s)" {
		t.Errorf("Error() = %q", two.Error())
	}
}
