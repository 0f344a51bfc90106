package service

import (
	"context"
	"errors"
	hotelserrors "stayquest/internal/hotels/errors"
	"stayquest/internal/hotels/repository"
	"stayquest/internal/hotels/validator"
	"stayquest/pkg/config"
	apperrors "stayquest/pkg/errors"
	"stayquest/pkg/model"
	"stayquest/pkg/sanitizer"
	"stayquest/pkg/validation"
)

type HotelService interface {
	GetAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error)
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	Create(ctx context.Context, req *model.CreateHotelRequest) (*model.Hotel, error)
	Update(ctx context.Context, id string, req *model.CreateHotelRequest) (*model.Hotel, error)
	Delete(ctx context.Context, id string) (*model.Hotel, error)
}

type hotelService struct {
	repo      repository.HotelRepository
	validator *validator.HotelValidator
	cfg       *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *hotelService) GetAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
	hotels, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels",
			"location", filter.Location,
			"sort", filter.Sort,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve hotels", err)
	}
	return hotels, nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(id, "Failed to retrieve hotel", err)
	}
	return hotel, nil
}

func (s *hotelService) Create(ctx context.Context, req *model.CreateHotelRequest) (*model.Hotel, error) {
	sanitizer.SanitizeHotelRequest(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Hotel validation failed",
			"name", req.Name,
			"error", err,
		)
		return nil, validationError(err)
	}

	hotel := req.ToHotel()
	if err := s.repo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel",
			"name", hotel.Name,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully",
		"id", hotel.ID,
		"name", hotel.Name,
		"location", hotel.Location,
	)
	return hotel, nil
}

// Update answers 404 for an unknown hotel before it looks at the payload.
func (s *hotelService) Update(ctx context.Context, id string, req *model.CreateHotelRequest) (*model.Hotel, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.translateLookupError(id, "Failed to check hotel existence", err)
	}

	sanitizer.SanitizeHotelRequest(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Hotel update validation failed",
			"id", id,
			"error", err,
		)
		return nil, validationError(err)
	}

	hotel := req.ToHotel()
	if req.Amenities == nil {
		// Omitted amenities leave the stored list untouched.
		hotel.Amenities = nil
	}

	updated, err := s.repo.Update(ctx, id, hotel)
	if err != nil {
		return nil, s.translateLookupError(id, "Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated successfully",
		"id", id,
		"name", updated.Name,
	)
	return updated, nil
}

func (s *hotelService) Delete(ctx context.Context, id string) (*model.Hotel, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(id, "Failed to delete hotel", err)
	}

	s.cfg.Log.Info("Hotel deleted successfully",
		"id", id,
		"name", deleted.Name,
	)
	return deleted, nil
}

// translateLookupError reports malformed and unknown ids alike as NOT_FOUND.
func (s *hotelService) translateLookupError(id, internalMsg string, err error) error {
	if errors.Is(err, hotelserrors.ErrNotFound) || errors.Is(err, hotelserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Hotel", id)
	}
	s.cfg.Log.Error(internalMsg,
		"id", id,
		"error", err,
	)
	return apperrors.Internal(internalMsg, err)
}

func validationError(err error) error {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation(fieldErrs.Error(), map[string]any{
			"errors": fieldErrs,
		})
	}
	return apperrors.Validation("Invalid hotel data", map[string]any{
		"error": err.Error(),
	})
}
