package repository

import (
	"context"
	"fmt"
	retrievalerrors "stayquest/internal/retrieval/errors"
	"stayquest/pkg/config"
	mongodb "stayquest/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Match is one vector hit: the hotel id stored as the vector document's _id
// and its similarity score.
type Match struct {
	HotelID string
	Score   float64
}

type VectorIndex interface {
	Search(ctx context.Context, vector []float32, k int) ([]Match, error)
	Upsert(ctx context.Context, hotelID string, vector []float32, text string) error
}

type mongoVectorIndex struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoVectorIndex(cfg *config.Config) VectorIndex {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVectorIndex{
		cfg:        cfg,
		collection: db.Collection(cfg.VectorCollection),
	}
}

type vectorHit struct {
	ID    bson.RawValue `bson:"_id"`
	Score float64       `bson:"score"`
}

// Search returns up to k nearest hotels, best first.
func (r *mongoVectorIndex) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := SearchPipeline(r.cfg.VectorIndexName, r.cfg.VectorPath, vector, k, r.cfg.NumCandidatesFactor)
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var hits []vectorHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("failed to decode vector hits: %w", err)
	}

	matches := make([]Match, 0, len(hits))
	for _, h := range hits {
		id, err := hexID(h.ID)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{HotelID: id, Score: h.Score})
	}
	return matches, nil
}

// Upsert stores the embedding of a hotel under the hotel's own _id.
func (r *mongoVectorIndex) Upsert(ctx context.Context, hotelID string, vector []float32, text string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(hotelID)
	if err != nil {
		return fmt.Errorf("invalid hotel id %q: %w", hotelID, err)
	}

	doc := bson.D{
		{Key: "_id", Value: objectID},
		{Key: r.cfg.VectorPath, Value: vector},
		{Key: "text", Value: text},
	}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert hotel vector: %w", err)
	}
	return nil
}

// SearchPipeline builds the $vectorSearch aggregation. The candidate pool is
// k*factor, never below k.
func SearchPipeline(index, path string, vector []float32, k, factor int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: index},
			{Key: "path", Value: path},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: k * max(1, factor)},
			{Key: "limit", Value: k},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}

// hexID accepts vector documents keyed by ObjectID or by its hex string.
func hexID(v bson.RawValue) (string, error) {
	switch v.Type {
	case bsontype.ObjectID:
		return v.ObjectID().Hex(), nil
	case bsontype.String:
		return v.StringValue(), nil
	default:
		return "", fmt.Errorf("%w: %s", retrievalerrors.ErrInvalidVectorID, v.Type)
	}
}
