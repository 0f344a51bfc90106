package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "stayquest/internal/bookings/errors"
	"stayquest/pkg/config"
	mongodb "stayquest/pkg/db/mongo"
	"stayquest/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	FindByHotel(ctx context.Context, hotelID string) ([]*model.Booking, error)
	DeleteOwned(ctx context.Context, id, userID string) (*model.Booking, error)

	ExecuteTransaction(ctx context.Context, fn mongodb.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongodb.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = ""
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}

	return nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoBookingRepository) FindByHotel(ctx context.Context, hotelID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"hotel_id": hotelID})
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// DeleteOwned removes the booking only when userID owns it. A booking owned
// by someone else is reported exactly like a missing one.
func (r *mongoBookingRepository) DeleteOwned(ctx context.Context, id, userID string) (*model.Booking, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var deleted model.Booking
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}
	return &deleted, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongodb.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
