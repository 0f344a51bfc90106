package validator

import (
	"errors"
	"stayquest/pkg/model"
	"stayquest/pkg/validation"
	"strings"
	"testing"
)

func price(v float64) *float64 { return &v }

func validRequest() *model.CreateHotelRequest {
	return &model.CreateHotelRequest{
		Name:        "Grand Azure",
		Location:    "Lisbon, Portugal",
		Image:       "https://cdn.example.com/azure.jpg",
		Price:       price(180),
		Description: "Riverside rooms with balconies.",
		Amenities:   []string{"Wi-Fi", "Pool"},
	}
}

func TestHotelValidator_Validate(t *testing.T) {
	v := NewHotelValidator()

	tests := []struct {
		name      string
		mutate    func(r *model.CreateHotelRequest)
		wantField string
	}{
		{"valid", func(r *model.CreateHotelRequest) {}, ""},
		{"zero price allowed", func(r *model.CreateHotelRequest) { r.Price = price(0) }, ""},
		{"no amenities allowed", func(r *model.CreateHotelRequest) { r.Amenities = nil }, ""},
		{"relative image path", func(r *model.CreateHotelRequest) { r.Image = "/assets/hotel.png" }, ""},
		{"missing name", func(r *model.CreateHotelRequest) { r.Name = "" }, "name"},
		{"missing location", func(r *model.CreateHotelRequest) { r.Location = "" }, "location"},
		{"missing description", func(r *model.CreateHotelRequest) { r.Description = "" }, "description"},
		{"missing price", func(r *model.CreateHotelRequest) { r.Price = nil }, "price"},
		{"negative price", func(r *model.CreateHotelRequest) { r.Price = price(-1) }, "price"},
		{"name too long", func(r *model.CreateHotelRequest) { r.Name = strings.Repeat("a", 201) }, "name"},
		{"empty amenity", func(r *model.CreateHotelRequest) { r.Amenities = []string{"Spa", ""} }, "amenities[1]"},
		{"missing image", func(r *model.CreateHotelRequest) { r.Image = "" }, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var fieldErrs validation.FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected field errors, got %v", err)
			}
			found := false
			for _, fe := range fieldErrs {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for %q in %v", tt.wantField, fieldErrs)
			}
		})
	}
}
