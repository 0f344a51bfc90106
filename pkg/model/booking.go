package model

import (
	"time"
)

type Booking struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	HotelID   string    `json:"hotelId" bson:"hotel_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	CheckIn   time.Time `json:"checkIn" bson:"check_in"`
	CheckOut  time.Time `json:"checkOut" bson:"check_out"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// CreateBookingRequest carries dates as strings. They are parsed after the
// structural checks pass.
type CreateBookingRequest struct {
	HotelID  string `json:"hotelId" validate:"required,mongodb"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

// BookingWithHotel is a booking with its hotel resolved. Hotel is nil when the
// hotel has since been deleted.
type BookingWithHotel struct {
	Booking
	Hotel *Hotel `json:"hotel"`
}

type BookingUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// BookingWithUser is the admin view of a hotel's booking.
type BookingWithUser struct {
	ID       string      `json:"_id"`
	HotelID  string      `json:"hotelId"`
	CheckIn  time.Time   `json:"checkIn"`
	CheckOut time.Time   `json:"checkOut"`
	Price    float64     `json:"price"`
	User     BookingUser `json:"user"`
}
