package service

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "stayquest/internal/bookings/errors"
	"stayquest/internal/bookings/pricing"
	"stayquest/internal/bookings/repository"
	"stayquest/internal/bookings/validator"
	hotelserrors "stayquest/internal/hotels/errors"
	"stayquest/pkg/auth"
	"stayquest/pkg/config"
	apperrors "stayquest/pkg/errors"
	"stayquest/pkg/kafka"
	"stayquest/pkg/model"
	"stayquest/pkg/validation"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const (
	MsgCheckInNotBeforeCheckOut = "Check-in date must be before check-out date"
	MsgCheckInInPast            = "Check-in date must be in the future"
)

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error)
	ListForHotel(ctx context.Context, hotelID string) ([]*model.BookingWithUser, error)
	ListForUser(ctx context.Context, userID string) ([]*model.BookingWithHotel, error)
	Delete(ctx context.Context, bookingID, userID string) (*model.Booking, error)
}

// HotelLookup is the part of the hotel repository bookings depend on.
type HotelLookup interface {
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Hotel, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	hotels    HotelLookup
	directory auth.Directory
	events    kafka.BookingEvents
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	hotels HotelLookup,
	directory auth.Directory,
	events kafka.BookingEvents,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	if events == nil {
		events = kafka.NoopBookingEvents{}
	}
	return &bookingService{
		repo:      repo,
		hotels:    hotels,
		directory: directory,
		events:    events,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest, userID string) (*model.Booking, error) {
	stay, err := s.validator.ValidateCreate(req, s.now())
	if err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"user_id", userID,
			"hotel_id", req.HotelID,
			"error", err,
		)
		return nil, translateValidationError(err)
	}

	booking := &model.Booking{
		HotelID:  req.HotelID,
		UserID:   userID,
		CheckIn:  stay.CheckIn,
		CheckOut: stay.CheckOut,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		hotel, err := s.hotels.FindByID(sessCtx, req.HotelID)
		if err != nil {
			if errors.Is(err, hotelserrors.ErrNotFound) || errors.Is(err, hotelserrors.ErrInvalidID) {
				return apperrors.NotFound("Hotel")
			}
			return fmt.Errorf("failed to load hotel: %w", err)
		}

		booking.Price = pricing.Quote(hotel.Price, stay.CheckIn, stay.CheckOut)
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			s.cfg.Log.Warn("Booking for unknown hotel", "hotel_id", req.HotelID, "user_id", userID)
			return nil, err
		}
		s.cfg.Log.Error("Failed to create booking",
			"hotel_id", req.HotelID,
			"user_id", userID,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"hotel_id", booking.HotelID,
		"user_id", userID,
		"nights", pricing.Nights(booking.CheckIn, booking.CheckOut),
		"price", booking.Price,
	)
	s.events.BookingCreated(ctx, booking)

	return booking, nil
}

// ListForHotel returns the hotel's bookings with each guest's name. Guests are
// looked up concurrently and one failed lookup fails the whole listing.
func (s *bookingService) ListForHotel(ctx context.Context, hotelID string) ([]*model.BookingWithUser, error) {
	bookings, err := s.repo.FindByHotel(ctx, hotelID)
	if err != nil {
		s.cfg.Log.Error("Failed to list hotel bookings", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	users, err := s.lookupUsers(ctx, bookings)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve booking users", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking users", err)
	}

	result := make([]*model.BookingWithUser, 0, len(bookings))
	for _, b := range bookings {
		u := users[b.UserID]
		result = append(result, &model.BookingWithUser{
			ID:       b.ID,
			HotelID:  b.HotelID,
			CheckIn:  b.CheckIn,
			CheckOut: b.CheckOut,
			Price:    b.Price,
			User: model.BookingUser{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
			},
		})
	}
	return result, nil
}

func (s *bookingService) lookupUsers(ctx context.Context, bookings []*model.Booking) (map[string]*auth.User, error) {
	ids := uniqueIDs(bookings, func(b *model.Booking) string { return b.UserID })
	found := make([]*auth.User, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.IdentityLookupConcurrency))
	for i, id := range ids {
		g.Go(func() error {
			user, err := s.directory.GetUser(gctx, id)
			if err != nil {
				return fmt.Errorf("user %s: %w", id, err)
			}
			found[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users := make(map[string]*auth.User, len(ids))
	for i, id := range ids {
		users[id] = found[i]
	}
	return users, nil
}

// ListForUser returns the caller's bookings with their hotels. A booking
// whose hotel no longer exists carries a nil hotel.
func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]*model.BookingWithHotel, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list user bookings", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	hotelIDs := uniqueIDs(bookings, func(b *model.Booking) string { return b.HotelID })
	hotels, err := s.hotels.FindByIDs(ctx, hotelIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve booking hotels", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	result := make([]*model.BookingWithHotel, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, &model.BookingWithHotel{
			Booking: *b,
			Hotel:   hotels[b.HotelID],
		})
	}
	return result, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID, userID string) (*model.Booking, error) {
	deleted, err := s.repo.DeleteOwned(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			s.cfg.Log.Warn("Booking not found for deletion",
				"id", bookingID,
				"user_id", userID,
			)
			return nil, apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to delete booking",
			"id", bookingID,
			"user_id", userID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully",
		"id", deleted.ID,
		"hotel_id", deleted.HotelID,
		"user_id", userID,
	)
	s.events.BookingDeleted(ctx, deleted)

	return deleted, nil
}

func translateValidationError(err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrCheckInNotBeforeCheckOut):
		return apperrors.InvalidDateRange(MsgCheckInNotBeforeCheckOut)
	case errors.Is(err, bookingserrors.ErrCheckInInPast):
		return apperrors.InvalidDateRange(MsgCheckInInPast)
	}

	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation(fieldErrs.Error(), map[string]any{
			"errors": fieldErrs,
		})
	}
	return apperrors.Validation("Invalid booking data", map[string]any{
		"error": err.Error(),
	})
}

func uniqueIDs(bookings []*model.Booking, key func(*model.Booking) string) []string {
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		id := key(b)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
