package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	hotelserrors "stayquest/internal/hotels/errors"
	"stayquest/pkg/config"
	mongodb "stayquest/pkg/db/mongo"
	"stayquest/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Hotels"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.Hotel, error)
	FindAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error)
	Update(ctx context.Context, id string, hotel *model.Hotel) (*model.Hotel, error)
	Delete(ctx context.Context, id string) (*model.Hotel, error)
}

type mongoHotelRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHotelRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	hotel.ID = ""
	hotel.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hotel.ID = oid.Hex()
	}

	return nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var hotel model.Hotel
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", hotelserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

// FindByIDs resolves many hotels in one query, keyed by hex id. Malformed and
// missing ids are absent from the result.
func (r *mongoHotelRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Hotel, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		}
	}

	hotels := make(map[string]*model.Hotel, len(objectIDs))
	if len(objectIDs) == 0 {
		return hotels, nil
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var results []*model.Hotel
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	for _, h := range results {
		hotels[h.ID] = h
	}
	return hotels, nil
}

func (r *mongoHotelRepository) FindAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find()
	if sort := BuildSort(filter.Sort); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.collection.Find(ctx, BuildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*model.Hotel{}
	if err = cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}

	return hotels, nil
}

// Update replaces the editable fields and returns the stored document. A nil
// Amenities slice keeps the stored list.
func (r *mongoHotelRepository) Update(ctx context.Context, id string, hotel *model.Hotel) (*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	set := bson.M{
		"name":        hotel.Name,
		"location":    hotel.Location,
		"image":       hotel.Image,
		"price":       hotel.Price,
		"description": hotel.Description,
	}
	if hotel.Amenities != nil {
		set["amenities"] = hotel.Amenities
	}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Hotel
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", hotelserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	return &updated, nil
}

func (r *mongoHotelRepository) Delete(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var deleted model.Hotel
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", hotelserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to delete hotel: %w", err)
	}

	return &deleted, nil
}

// BuildFilter turns a HotelFilter into a conjunctive Mongo query. Location is a
// case-insensitive substring match on the literal input.
func BuildFilter(f model.HotelFilter) bson.M {
	filter := bson.M{}

	if f.Location != "" {
		filter["location"] = bson.M{
			"$regex":   regexp.QuoteMeta(f.Location),
			"$options": "i",
		}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// BuildSort maps a sort key to a Mongo sort document; unknown keys give nil
// (natural order).
func BuildSort(sort string) bson.D {
	switch sort {
	case model.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case model.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case model.SortAlphabeticalAsc:
		return bson.D{{Key: "name", Value: 1}}
	case model.SortAlphabeticalDesc:
		return bson.D{{Key: "name", Value: -1}}
	default:
		return nil
	}
}
