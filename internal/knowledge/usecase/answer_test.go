package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/pkg/log"
	"horticulture-assistant/pkg/qdrant"
)

type mockEmbedder struct {
	vector []float32
	err    error
}

func (m *mockEmbedder) EmbedContent(_ context.Context, _ string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

type mockStore struct {
	exists      bool
	created     *qdrant.CreateCollectionRequest
	upserted    *qdrant.UpsertPointsRequest
	lastSearch  qdrant.SearchRequest
	searchHits  []qdrant.ScoredPoint
	searchError error
}

func (m *mockStore) CollectionExists(_ context.Context, _ string) (bool, error) {
	return m.exists, nil
}

func (m *mockStore) CreateCollection(_ context.Context, req qdrant.CreateCollectionRequest) error {
	m.created = &req
	return nil
}

func (m *mockStore) UpsertPoints(_ context.Context, _ string, req qdrant.UpsertPointsRequest) error {
	m.upserted = &req
	return nil
}

func (m *mockStore) SearchPoints(_ context.Context, _ string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error) {
	m.lastSearch = req
	if m.searchError != nil {
		return nil, m.searchError
	}
	return &qdrant.SearchResponse{Result: m.searchHits}, nil
}

func hit(text, product, category string, score float64) qdrant.ScoredPoint {
	return qdrant.ScoredPoint{
		Score: score,
		Payload: map[string]interface{}{
			"text":         text,
			"product_name": product,
			"category":     category,
		},
	}
}

func newTestUseCase(store *mockStore, embedder *mockEmbedder) *implUseCase {
	return New(store, embedder, Config{Collection: "horticulture_kb", VectorSize: 768}, log.NewNop())
}

func TestAnswer(t *testing.T) {
	embedder := &mockEmbedder{vector: []float32{0.1, 0.2}}
	catalog := []string{"Tomato", "Avocado"}

	t.Run("focused question gets a single stripped answer", func(t *testing.T) {
		store := &mockStore{searchHits: []qdrant.ScoredPoint{
			hit("Tomato storage: Keep at room temperature away from sunlight.", "Tomato", "storage", 0.93),
		}}
		uc := newTestUseCase(store, embedder)

		answer, err := uc.Answer(context.Background(), knowledge.AnswerInput{
			Question:     "How do I store tomato?",
			CatalogNames: catalog,
		})
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if answer.Message != "Keep at room temperature away from sunlight." {
			t.Errorf("message = %q, want the stripped storage answer", answer.Message)
		}
		if answer.Category != "storage" || answer.ProductName != "Tomato" {
			t.Errorf("inferred (%q, %q), want (storage, Tomato)", answer.Category, answer.ProductName)
		}
		if store.lastSearch.Limit != 1 {
			t.Errorf("limit = %d, want 1 for a focused question", store.lastSearch.Limit)
		}
		if store.lastSearch.Filter == nil {
			t.Error("focused search sent no payload filter")
		}
	})

	t.Run("broad question lists matches", func(t *testing.T) {
		store := &mockStore{searchHits: []qdrant.ScoredPoint{
			hit("Rich in lycopene.", "Tomato", "nutrition", 0.8),
			hit("High in potassium.", "Avocado", "nutrition", 0.7),
		}}
		uc := newTestUseCase(store, embedder)

		answer, err := uc.Answer(context.Background(), knowledge.AnswerInput{
			Question: "Tell me something healthy",
		})
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if !strings.HasPrefix(answer.Message, "Based on product knowledge:") {
			t.Errorf("message = %q, want list format", answer.Message)
		}
		if !strings.Contains(answer.Message, "- Tomato [nutrition]: Rich in lycopene.") {
			t.Errorf("message missing first listed match: %q", answer.Message)
		}
		if store.lastSearch.Limit != 3 {
			t.Errorf("limit = %d, want 3", store.lastSearch.Limit)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		uc := newTestUseCase(&mockStore{}, embedder)
		answer, err := uc.Answer(context.Background(), knowledge.AnswerInput{Question: "anything about quinoa?"})
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if answer.Message != noInformationMessage {
			t.Errorf("message = %q, want the no-information reply", answer.Message)
		}
	})

	t.Run("empty question", func(t *testing.T) {
		uc := newTestUseCase(&mockStore{}, embedder)
		_, err := uc.Answer(context.Background(), knowledge.AnswerInput{Question: "  "})
		if !errors.Is(err, knowledge.ErrEmptyQuestion) {
			t.Errorf("err = %v, want ErrEmptyQuestion", err)
		}
	})
}

func TestEnsureCollection(t *testing.T) {
	t.Run("creates when missing", func(t *testing.T) {
		store := &mockStore{}
		uc := newTestUseCase(store, &mockEmbedder{})
		if err := uc.EnsureCollection(context.Background()); err != nil {
			t.Fatalf("EnsureCollection: %v", err)
		}
		if store.created == nil {
			t.Fatal("collection not created")
		}
		if store.created.Vectors.Size != 768 || store.created.Vectors.Distance != "Cosine" {
			t.Errorf("vector config = %+v, want 768/Cosine", store.created.Vectors)
		}
	})

	t.Run("skips when present", func(t *testing.T) {
		store := &mockStore{exists: true}
		uc := newTestUseCase(store, &mockEmbedder{})
		if err := uc.EnsureCollection(context.Background()); err != nil {
			t.Fatalf("EnsureCollection: %v", err)
		}
		if store.created != nil {
			t.Error("collection recreated although it exists")
		}
	})
}
