package kafka

import (
	"context"
	"time"

	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingDeleted = "booking.deleted"

	bookingSchemaVersion = "1"
	eventSource          = "stayquest-api"
)

// BookingEvent is the payload of booking.* messages, keyed by booking id.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	HotelID    string    `json:"hotelId"`
	UserID     string    `json:"userId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurredAt"`
}

// BookingEvents announces booking lifecycle changes. Implementations never
// fail the caller: publishing is best effort.
type BookingEvents interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, booking *model.Booking)
}

// Publisher is what BookingPublisher needs from a Producer.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type BookingPublisher struct {
	producer Publisher
	log      *logger.Logger
	now      func() time.Time
}

func NewBookingPublisher(producer Publisher, log *logger.Logger) *BookingPublisher {
	return &BookingPublisher{producer: producer, log: log, now: time.Now}
}

func (p *BookingPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *BookingPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingDeleted, booking)
}

func (p *BookingPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if booking == nil {
		return
	}

	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		HotelID:    booking.HotelID,
		UserID:     booking.UserID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Price:      booking.Price,
		OccurredAt: p.now().UTC(),
	}

	msg, err := NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithCorrelationID(logger.RequestID(ctx)).
		WithSchemaVersion(bookingSchemaVersion).
		WithSource(eventSource).
		Build()
	if err != nil {
		p.log.FromContext(ctx).Error("Failed to build booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.FromContext(ctx).Warn("Booking event not published",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// NoopBookingEvents is used when no brokers are configured.
type NoopBookingEvents struct{}

func (NoopBookingEvents) BookingCreated(context.Context, *model.Booking) {}
func (NoopBookingEvents) BookingDeleted(context.Context, *model.Booking) {}
