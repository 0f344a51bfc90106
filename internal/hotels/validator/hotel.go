package validator

import (
	"stayquest/pkg/model"
	"stayquest/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type HotelValidator struct {
	validate *validator.Validate
}

func NewHotelValidator() *HotelValidator {
	return &HotelValidator{
		validate: validation.New(),
	}
}

// Validate checks the full hotel shape used by both create and update.
func (v *HotelValidator) Validate(req *model.CreateHotelRequest) error {
	return validation.Struct(v.validate, req)
}
