package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hotelserrors "stayquest/internal/hotels/errors"
	"stayquest/internal/retrieval/repository"
	"stayquest/pkg/config"
	apperrors "stayquest/pkg/errors"
	"stayquest/pkg/model"

	"golang.org/x/sync/errgroup"
)

const (
	// FullConfidence is reported for every hotel when no query narrows the list.
	FullConfidence = 1.0

	// maxRetrieved bounds the result set regardless of RETRIEVE_TOP_K.
	maxRetrieved = 4

	indexBatchSize = 64
	assistantRole  = "assistant"
	embedderName   = "Embedding service"
	assistantName  = "Assistant"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Assistant interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HotelStore is the slice of the hotel repository retrieval reads from.
type HotelStore interface {
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error)
}

type RetrievalService interface {
	Retrieve(ctx context.Context, query string) ([]model.RetrievedHotel, error)
	Generate(ctx context.Context, prompt string) (*model.GenerateResponse, error)
	IndexHotels(ctx context.Context) (int, error)
}

type retrievalService struct {
	hotels    HotelStore
	index     repository.VectorIndex
	embedder  Embedder
	assistant Assistant
	cfg       *config.Config
}

func NewRetrievalService(
	hotels HotelStore,
	index repository.VectorIndex,
	embedder Embedder,
	assistant Assistant,
	cfg *config.Config,
) RetrievalService {
	return &retrievalService{
		hotels:    hotels,
		index:     index,
		embedder:  embedder,
		assistant: assistant,
		cfg:       cfg,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, query string) ([]model.RetrievedHotel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.everyHotel(ctx)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.cfg.Log.Error("Failed to embed query",
			"query_length", len(query),
			"error", err,
		)
		return nil, apperrors.Unavailable(embedderName)
	}

	k := min(max(1, s.cfg.RetrieveTopK), maxRetrieved)
	matches, err := s.index.Search(ctx, vector, k)
	if err != nil {
		s.cfg.Log.Error("Vector search failed",
			"k", k,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to search hotels", err)
	}
	if len(matches) > k {
		matches = matches[:k]
	}

	return s.resolve(ctx, matches)
}

func (s *retrievalService) everyHotel(ctx context.Context) ([]model.RetrievedHotel, error) {
	hotels, err := s.hotels.FindAll(ctx, model.HotelFilter{})
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels for retrieval", "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotels", err)
	}

	results := make([]model.RetrievedHotel, 0, len(hotels))
	for _, h := range hotels {
		results = append(results, model.RetrievedHotel{Hotel: h, Confidence: FullConfidence})
	}
	return results, nil
}

// resolve loads the hotel behind each match concurrently and keeps the
// index's ranking. Matches whose hotel is gone are dropped.
func (s *retrievalService) resolve(ctx context.Context, matches []repository.Match) ([]model.RetrievedHotel, error) {
	found := make([]*model.Hotel, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range matches {
		g.Go(func() error {
			hotel, err := s.hotels.FindByID(gctx, m.HotelID)
			if err != nil {
				if errors.Is(err, hotelserrors.ErrNotFound) || errors.Is(err, hotelserrors.ErrInvalidID) {
					s.cfg.Log.Warn("Dropping vector match without hotel",
						"hotel_id", m.HotelID,
						"score", m.Score,
					)
					return nil
				}
				return fmt.Errorf("resolve hotel %s: %w", m.HotelID, err)
			}
			found[i] = hotel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to resolve retrieved hotels", "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotels", err)
	}

	results := make([]model.RetrievedHotel, 0, len(matches))
	for i, hotel := range found {
		if hotel == nil {
			continue
		}
		results = append(results, model.RetrievedHotel{Hotel: hotel, Confidence: matches[i].Score})
	}
	return results, nil
}

func (s *retrievalService) Generate(ctx context.Context, prompt string) (*model.GenerateResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperrors.Validation("Prompt is required", map[string]any{
			"errors": []map[string]string{{"field": "prompt", "message": "is required"}},
		})
	}

	content, err := s.assistant.Complete(ctx, prompt)
	if err != nil {
		s.cfg.Log.Error("Chat completion failed", "error", err)
		return nil, apperrors.Unavailable(assistantName)
	}

	return &model.GenerateResponse{
		Message: model.AssistantMessage{Role: assistantRole, Content: content},
	}, nil
}

// IndexHotels embeds every hotel and upserts its vector. It returns the number
// of hotels indexed.
func (s *retrievalService) IndexHotels(ctx context.Context) (int, error) {
	hotels, err := s.hotels.FindAll(ctx, model.HotelFilter{})
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels for indexing", "error", err)
		return 0, apperrors.Internal("Failed to index hotels", err)
	}

	indexed := 0
	for start := 0; start < len(hotels); start += indexBatchSize {
		batch := hotels[start:min(start+indexBatchSize, len(hotels))]

		texts := make([]string, len(batch))
		for i, h := range batch {
			texts[i] = HotelText(h)
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			s.cfg.Log.Error("Failed to embed hotels",
				"batch_start", start,
				"indexed", indexed,
				"error", err,
			)
			return indexed, apperrors.Unavailable(embedderName)
		}

		for i, h := range batch {
			if err := s.index.Upsert(ctx, h.ID, vectors[i], texts[i]); err != nil {
				s.cfg.Log.Error("Failed to store hotel vector",
					"hotel_id", h.ID,
					"error", err,
				)
				return indexed, apperrors.Internal("Failed to index hotels", err)
			}
			indexed++
		}
	}

	s.cfg.Log.Info("Hotel embeddings created", "indexed", indexed)
	return indexed, nil
}

// HotelText is the document embedded for a hotel.
func HotelText(h *model.Hotel) string {
	parts := []string{h.Name, h.Location, h.Description, fmt.Sprintf("$%.2f per night", h.Price)}
	if len(h.Amenities) > 0 {
		parts = append(parts, "Amenities: "+strings.Join(h.Amenities, ", "))
	}
	return strings.Join(parts, ". ")
}
