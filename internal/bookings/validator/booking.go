package validator

import (
	"fmt"
	bookingserrors "stayquest/internal/bookings/errors"
	"stayquest/pkg/model"
	"stayquest/pkg/validation"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Accepted check-in/check-out layouts. Values without a zone, date-only ones
// included, are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{
		validate: validation.New(),
	}
}

// Stay is a parsed and checked booking date range.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ValidateCreate runs the structural checks, then the date-range rules, in
// that order. now decides what "today" is.
func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest, now time.Time) (Stay, error) {
	if err := validation.Struct(v.validate, req); err != nil {
		return Stay{}, err
	}

	var errs validation.FieldErrors
	checkIn, err := ParseDate(req.CheckIn)
	if err != nil {
		errs = append(errs, validation.FieldError{Field: "checkIn", Message: "must be a valid date"})
	}
	checkOut, err := ParseDate(req.CheckOut)
	if err != nil {
		errs = append(errs, validation.FieldError{Field: "checkOut", Message: "must be a valid date"})
	}
	if len(errs) > 0 {
		return Stay{}, errs
	}

	if !checkIn.Before(checkOut) {
		return Stay{}, bookingserrors.ErrCheckInNotBeforeCheckOut
	}
	if checkIn.Before(StartOfDay(now)) {
		return Stay{}, bookingserrors.ErrCheckInInPast
	}

	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidDate, raw)
}

// StartOfDay is local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
