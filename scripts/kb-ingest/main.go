package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"horticulture-assistant/config"
	knowledgeUC "horticulture-assistant/internal/knowledge/usecase"
	"horticulture-assistant/pkg/gemini"
	"horticulture-assistant/pkg/log"
	"horticulture-assistant/pkg/qdrant"
)

// Loads the horticulture knowledge base CSV into the Qdrant collection.
//
// Usage:
//
//	go run scripts/kb-ingest/main.go -csv data/knowledge_base.csv
//
// Re-running replaces prior rows, so it is safe to run after editing the CSV.
func main() {
	csvPath := flag.String("csv", "data/knowledge_base.csv", "path to the knowledge base CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	var geminiCfg *config.ProviderConfig
	for i := range cfg.LLM.Providers {
		p := cfg.LLM.Providers[i]
		if p.Enabled && p.Name == "gemini" {
			geminiCfg = &p
			break
		}
	}
	if geminiCfg == nil {
		logger.Fatal(ctx, "No enabled gemini provider configured")
	}

	embedder, err := gemini.New(gemini.Config{
		APIKey: geminiCfg.APIKey,
		Model:  geminiCfg.Model,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Gemini client: %v", err)
	}

	knowledge := knowledgeUC.New(
		qdrant.NewClient(cfg.Qdrant.URL),
		embedder,
		knowledgeUC.Config{
			Collection: cfg.Qdrant.CollectionName,
			VectorSize: cfg.Qdrant.VectorSize,
		},
		logger,
	)

	logger.Infof(ctx, "Ingesting knowledge base from %s...", *csvPath)
	count, err := knowledge.IngestCSV(ctx, *csvPath)
	if err != nil {
		logger.Fatalf(ctx, "Ingest failed: %v", err)
	}
	logger.Infof(ctx, "Done. %d documents upserted into %s", count, cfg.Qdrant.CollectionName)
}
