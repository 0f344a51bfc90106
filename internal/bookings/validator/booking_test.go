package validator

import (
	"errors"
	bookingserrors "stayquest/internal/bookings/errors"
	"stayquest/pkg/model"
	"stayquest/pkg/validation"
	"testing"
	"time"
)

const hotelID = "665f1c2e9b1e8a3d4c5b6a70"

func TestValidateCreate(t *testing.T) {
	v := NewBookingValidator()
	now := time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     model.CreateBookingRequest
		wantErr error
		schema  bool
	}{
		{"valid date-only", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2025-01-01", CheckOut: "2025-01-03"}, nil, false},
		{"valid rfc3339", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2025-02-01T14:00:00Z", CheckOut: "2025-02-02T11:00:00Z"}, nil, false},
		{"valid date-time without zone", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2025-01-01T00:00:00", CheckOut: "2025-01-02T10:30:00.5"}, nil, false},
		{"missing hotel", model.CreateBookingRequest{CheckIn: "2025-01-02", CheckOut: "2025-01-03"}, nil, true},
		{"malformed hotel id", model.CreateBookingRequest{HotelID: "abc", CheckIn: "2025-01-02", CheckOut: "2025-01-03"}, nil, true},
		{"unparseable date", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "tomorrow", CheckOut: "2025-01-03"}, nil, true},
		{"equal dates", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2025-01-05", CheckOut: "2025-01-05"}, bookingserrors.ErrCheckInNotBeforeCheckOut, false},
		{"reversed dates", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2025-01-06", CheckOut: "2025-01-05"}, bookingserrors.ErrCheckInNotBeforeCheckOut, false},
		{"in the past", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2024-12-31", CheckOut: "2025-01-05"}, bookingserrors.ErrCheckInInPast, false},
		{"reversed and past reports order first", model.CreateBookingRequest{HotelID: hotelID, CheckIn: "2024-12-31", CheckOut: "2024-12-30"}, bookingserrors.ErrCheckInNotBeforeCheckOut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := v.ValidateCreate(&tt.req, now)

			switch {
			case tt.schema:
				var fieldErrs validation.FieldErrors
				if !errors.As(err, &fieldErrs) {
					t.Errorf("expected field errors, got %v", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !stay.CheckIn.Before(stay.CheckOut) {
					t.Errorf("bad stay %+v", stay)
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{" 2025-01-01T00:00:00 ", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T09:15", time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC)},
		{"2025-01-01T09:15:30.250", time.Date(2025, 1, 1, 9, 15, 30, 250_000_000, time.UTC)},
		{"2025-01-01T09:15:30+02:00", time.Date(2025, 1, 1, 7, 15, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.raw)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tt.raw, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []string{"", "01/02/2025", "2025-13-01T00:00:00"} {
		if _, err := ParseDate(raw); !errors.Is(err, bookingserrors.ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", raw, err)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got := StartOfDay(time.Date(2025, 3, 9, 23, 59, 0, 0, loc))
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}
