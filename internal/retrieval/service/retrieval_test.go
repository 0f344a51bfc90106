package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	hotelserrors "stayquest/internal/hotels/errors"
	"stayquest/internal/retrieval/repository"
	"stayquest/pkg/config"
	apperrors "stayquest/pkg/errors"
	"stayquest/pkg/logger"
	"stayquest/pkg/model"
)

type mockHotelStore struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Hotel, error)
	findAllFunc  func(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error)
}

func (m *mockHotelStore) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Hotel{ID: id, Name: "Hotel " + id}, nil
}

func (m *mockHotelStore) FindAll(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter)
	}
	return []*model.Hotel{}, nil
}

type mockVectorIndex struct {
	searchFunc func(ctx context.Context, vector []float32, k int) ([]repository.Match, error)

	mu       sync.Mutex
	upserted map[string]string
}

func (m *mockVectorIndex) Search(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, vector, k)
	}
	return nil, nil
}

func (m *mockVectorIndex) Upsert(ctx context.Context, hotelID string, vector []float32, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upserted == nil {
		m.upserted = map[string]string{}
	}
	m.upserted[hotelID] = text
	return nil
}

type mockEmbedder struct {
	embedFunc  func(ctx context.Context, text string) ([]float32, error)
	batchFunc  func(ctx context.Context, texts []string) ([][]float32, error)
	batchSizes []int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchSizes = append(m.batchSizes, len(texts))
	if m.batchFunc != nil {
		return m.batchFunc(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i)}
	}
	return out, nil
}

type mockAssistant struct {
	completeFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, prompt)
	}
	return "echo: " + prompt, nil
}

type fixture struct {
	hotels    *mockHotelStore
	index     *mockVectorIndex
	embedder  *mockEmbedder
	assistant *mockAssistant
}

func newFixture() *fixture {
	return &fixture{
		hotels:    &mockHotelStore{},
		index:     &mockVectorIndex{},
		embedder:  &mockEmbedder{},
		assistant: &mockAssistant{},
	}
}

func (f *fixture) service() RetrievalService {
	cfg := &config.Config{Log: logger.Discard(), RetrieveTopK: 4}
	return NewRetrievalService(f.hotels, f.index, f.embedder, f.assistant, cfg)
}

func TestRetrieve_EmptyQueryReturnsEveryHotel(t *testing.T) {
	f := newFixture()
	f.hotels.findAllFunc = func(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
		return []*model.Hotel{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
	}
	f.embedder.embedFunc = func(ctx context.Context, text string) ([]float32, error) {
		t.Fatal("empty query must not be embedded")
		return nil, nil
	}

	for _, q := range []string{"", "   "} {
		results, err := f.service().Retrieve(context.Background(), q)
		if err != nil {
			t.Fatalf("Retrieve(%q) error = %v", q, err)
		}
		if len(results) != 3 {
			t.Fatalf("Retrieve(%q) = %d results, want 3", q, len(results))
		}
		for _, r := range results {
			if r.Confidence != FullConfidence {
				t.Errorf("confidence = %v, want 1", r.Confidence)
			}
		}
	}
}

func TestRetrieve_KeepsIndexOrderAndScores(t *testing.T) {
	f := newFixture()
	var gotK int
	f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
		gotK = k
		return []repository.Match{
			{HotelID: "h1", Score: 0.93},
			{HotelID: "h2", Score: 0.88},
			{HotelID: "h3", Score: 0.71},
		}, nil
	}

	results, err := f.service().Retrieve(context.Background(), "quiet beach hotel")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if gotK != 4 {
		t.Errorf("k = %d, want 4", gotK)
	}
	want := []string{"h1", "h2", "h3"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, id := range want {
		if results[i].Hotel.ID != id {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Hotel.ID, id)
		}
	}
	if results[0].Confidence != 0.93 {
		t.Errorf("confidence = %v, want 0.93", results[0].Confidence)
	}
}

func TestRetrieve_CapsAtTopK(t *testing.T) {
	f := newFixture()
	f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
		var matches []repository.Match
		for i := range 7 {
			matches = append(matches, repository.Match{HotelID: fmt.Sprintf("h%d", i), Score: 1 - float64(i)/10})
		}
		return matches, nil
	}

	results, err := f.service().Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 4 {
		t.Errorf("got %d results, want 4", len(results))
	}
}

func TestRetrieve_TopKNeverExceedsFour(t *testing.T) {
	f := newFixture()
	var gotK int
	f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
		gotK = k
		var matches []repository.Match
		for i := range 10 {
			matches = append(matches, repository.Match{HotelID: fmt.Sprintf("h%d", i), Score: 1 - float64(i)/20})
		}
		return matches, nil
	}

	cfg := &config.Config{Log: logger.Discard(), RetrieveTopK: 10}
	svc := NewRetrievalService(f.hotels, f.index, f.embedder, f.assistant, cfg)
	results, err := svc.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if gotK != maxRetrieved {
		t.Errorf("k = %d, want %d", gotK, maxRetrieved)
	}
	if len(results) != maxRetrieved {
		t.Errorf("got %d results, want %d", len(results), maxRetrieved)
	}
}

func TestRetrieve_DropsMissingHotels(t *testing.T) {
	f := newFixture()
	f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
		return []repository.Match{{HotelID: "h1"}, {HotelID: "gone"}, {HotelID: "bad"}, {HotelID: "h4"}}, nil
	}
	f.hotels.findByIDFunc = func(ctx context.Context, id string) (*model.Hotel, error) {
		switch id {
		case "gone":
			return nil, fmt.Errorf("%w: %s", hotelserrors.ErrNotFound, id)
		case "bad":
			return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
		}
		return &model.Hotel{ID: id}, nil
	}

	results, err := f.service().Retrieve(context.Background(), "city break")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(results) != 2 || results[0].Hotel.ID != "h1" || results[1].Hotel.ID != "h4" {
		t.Errorf("unexpected results %+v", results)
	}
}

func TestRetrieve_Failures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fixture)
		wantCode string
	}{
		{
			name: "embedding unavailable",
			setup: func(f *fixture) {
				f.embedder.embedFunc = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("429 too many requests")
				}
			},
			wantCode: apperrors.CodeUnavailable,
		},
		{
			name: "search fails",
			setup: func(f *fixture) {
				f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
					return nil, errors.New("index missing")
				}
			},
			wantCode: apperrors.CodeInternal,
		},
		{
			name: "hotel lookup fails",
			setup: func(f *fixture) {
				f.index.searchFunc = func(ctx context.Context, vector []float32, k int) ([]repository.Match, error) {
					return []repository.Match{{HotelID: "h1"}}, nil
				}
				f.hotels.findByIDFunc = func(ctx context.Context, id string) (*model.Hotel, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			_, err := f.service().Retrieve(context.Background(), "query")
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	f := newFixture()

	resp, err := f.service().Generate(context.Background(), "Suggest a hotel in Paris")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Message.Role != "assistant" || resp.Message.Content != "echo: Suggest a hotel in Paris" {
		t.Errorf("unexpected response %+v", resp.Message)
	}

	if _, err := f.service().Generate(context.Background(), "  "); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("empty prompt error = %v, want validation", err)
	}

	f.assistant.completeFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("upstream down")
	}
	if _, err := f.service().Generate(context.Background(), "hi"); !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Errorf("error = %v, want unavailable", err)
	}
}

func TestIndexHotels_BatchesAndUpserts(t *testing.T) {
	f := newFixture()
	hotels := make([]*model.Hotel, 130)
	for i := range hotels {
		hotels[i] = &model.Hotel{ID: fmt.Sprintf("h%03d", i), Name: "Hotel", Location: "Rome", Price: 90}
	}
	f.hotels.findAllFunc = func(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
		return hotels, nil
	}

	n, err := f.service().IndexHotels(context.Background())
	if err != nil {
		t.Fatalf("IndexHotels() error = %v", err)
	}
	if n != 130 || len(f.index.upserted) != 130 {
		t.Errorf("indexed %d, upserted %d, want 130", n, len(f.index.upserted))
	}
	if fmt.Sprint(f.embedder.batchSizes) != "[64 64 2]" {
		t.Errorf("batch sizes = %v", f.embedder.batchSizes)
	}
}

func TestIndexHotels_EmbeddingFailure(t *testing.T) {
	f := newFixture()
	f.hotels.findAllFunc = func(ctx context.Context, filter model.HotelFilter) ([]*model.Hotel, error) {
		return []*model.Hotel{{ID: "h1"}}, nil
	}
	f.embedder.batchFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("quota exceeded")
	}

	n, err := f.service().IndexHotels(context.Background())
	if n != 0 || !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Errorf("IndexHotels() = %d, %v", n, err)
	}
}

func TestHotelText(t *testing.T) {
	text := HotelText(&model.Hotel{
		Name:        "Harbour View",
		Location:    "Sydney, Australia",
		Description: "Opera house views",
		Price:       240,
		Amenities:   []string{"pool", "wifi"},
	})
	for _, part := range []string{"Harbour View", "Sydney, Australia", "$240.00 per night", "Amenities: pool, wifi"} {
		if !strings.Contains(text, part) {
			t.Errorf("text %q missing %q", text, part)
		}
	}
}
