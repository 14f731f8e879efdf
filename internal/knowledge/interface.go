package knowledge

import (
	"context"

	"horticulture-assistant/pkg/qdrant"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// EnsureCollection creates the vector collection if it does not exist yet.
	EnsureCollection(ctx context.Context) error

	// IngestCSV embeds and upserts the knowledge base CSV, returning the
	// number of documents loaded.
	IngestCSV(ctx context.Context, path string) (int, error)

	// Answer retrieves and shapes a reply to a product knowledge question.
	Answer(ctx context.Context, input AnswerInput) (Answer, error)
}

// Embedder produces text embeddings.
type Embedder interface {
	EmbedContent(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is the subset of the vector database used for retrieval.
type VectorStore interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collectionName string, req qdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collectionName string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}
