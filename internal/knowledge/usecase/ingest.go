package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/pkg/qdrant"
)

// EnsureCollection creates the vector collection if it does not exist yet.
func (uc *implUseCase) EnsureCollection(ctx context.Context) error {
	exists, err := uc.store.CollectionExists(ctx, uc.cfg.Collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	uc.l.Infof(ctx, "%s: creating collection %s", knowledgeUseCaseLogPrefix, uc.cfg.Collection)
	return uc.store.CreateCollection(ctx, qdrant.CreateCollectionRequest{
		Name: uc.cfg.Collection,
		Vectors: qdrant.VectorConfig{
			Size:     uc.cfg.VectorSize,
			Distance: "Cosine",
		},
	})
}

// IngestCSV loads the knowledge base CSV, embeds every document and upserts
// the points. The CSV must carry embedding_text, product_name and category
// columns. Point ids are row positions, so re-running replaces prior rows.
func (uc *implUseCase) IngestCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()

	entries, err := parseEntries(csv.NewReader(f))
	if err != nil {
		return 0, err
	}

	if err := uc.EnsureCollection(ctx); err != nil {
		return 0, err
	}

	points := make([]qdrant.Point, 0, len(entries))
	for i, e := range entries {
		vector, err := uc.embedder.EmbedContent(ctx, e.Text)
		if err != nil {
			return 0, fmt.Errorf("embed document %d: %w", i, err)
		}
		points = append(points, qdrant.Point{
			ID:     uint64(i),
			Vector: vector,
			Payload: map[string]interface{}{
				"text":         e.Text,
				"product_name": e.ProductName,
				"category":     e.Category,
			},
		})
	}

	if err := uc.store.UpsertPoints(ctx, uc.cfg.Collection, qdrant.UpsertPointsRequest{Points: points}); err != nil {
		return 0, err
	}

	uc.l.Infof(ctx, "%s: ingested %d documents into %s", knowledgeUseCaseLogPrefix, len(points), uc.cfg.Collection)
	return len(points), nil
}

func parseEntries(r *csv.Reader) ([]knowledge.Entry, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read knowledge base header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"embedding_text", "product_name", "category"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("knowledge base missing column %q", required)
		}
	}

	var entries []knowledge.Entry
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		entries = append(entries, knowledge.Entry{
			Text:        record[cols["embedding_text"]],
			ProductName: record[cols["product_name"]],
			Category:    record[cols["category"]],
		})
	}
	return entries, nil
}
