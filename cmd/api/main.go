package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"horticulture-assistant/config"
	agenttools "horticulture-assistant/internal/agent/tools"
	chatHTTP "horticulture-assistant/internal/chat/delivery/http"
	"horticulture-assistant/internal/chat/orchestrator"
	"horticulture-assistant/internal/httpserver"
	"horticulture-assistant/internal/imagegen"
	"horticulture-assistant/internal/intent"
	knowledgeUC "horticulture-assistant/internal/knowledge/usecase"
	marketRepo "horticulture-assistant/internal/market/repository/postgre"
	marketUC "horticulture-assistant/internal/market/usecase"
	"horticulture-assistant/internal/middleware"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/internal/session/memory"
	"horticulture-assistant/pkg/gemini"
	"horticulture-assistant/pkg/llmprovider"
	"horticulture-assistant/pkg/log"
	"horticulture-assistant/pkg/qdrant"
)

// @title       Horticulture Assistant API
// @description Conversational commerce assistant for an Ethiopian horticulture marketplace.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Horticulture Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Relational store
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error(ctx, "Failed to connect to postgres: ", err)
		return
	}
	if err := marketRepo.Migrate(db); err != nil {
		logger.Error(ctx, "Failed to run migrations: ", err)
		return
	}

	// 4. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)

	// Direct Gemini client for embeddings and image generation.
	geminiClient, err := newGeminiClient(cfg, "")
	if err != nil {
		logger.Error(ctx, "Failed to initialize Gemini client: ", err)
		return
	}

	// Flash-tier client for intent classification, kept off the conversation
	// model so classification stays fast and cheap.
	intentClient, err := newGeminiClient(cfg, cfg.LLM.IntentModel)
	if err != nil {
		logger.Error(ctx, "Failed to initialize intent classifier client: ", err)
		return
	}

	// 5. Session store
	sessions := session.NewManager(
		memory.New(cfg.Session.MaxSessions, time.Duration(cfg.Session.TTLSeconds)*time.Second),
		session.Config{MaxHistory: cfg.Session.MaxHistory},
		logger,
	)

	// 6. Market domain
	repo := marketRepo.New(db, logger)
	market := marketUC.New(repo, logger)

	// 7. Knowledge domain (Qdrant + embeddings)
	qdrantClient := qdrant.NewClient(cfg.Qdrant.URL)
	knowledge := knowledgeUC.New(qdrantClient, geminiClient, knowledgeUC.Config{
		Collection: cfg.Qdrant.CollectionName,
		VectorSize: cfg.Qdrant.VectorSize,
	}, logger)
	if err := knowledge.EnsureCollection(ctx); err != nil {
		logger.Warnf(ctx, "Knowledge collection not ready (RAG degraded): %v", err)
	}

	// 8. Image generation
	images, err := imagegen.New(geminiClient, imagegen.Config{
		Dir:     filepath.Join(cfg.Static.Dir, "images"),
		BaseURL: path.Join(cfg.Static.BaseURL, "images"),
	}, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize image generation: ", err)
		return
	}

	// 9. Conversation engine
	registry := agenttools.NewRegistry(agenttools.Deps{
		Market:        market,
		Knowledge:     knowledge,
		Images:        images,
		Sessions:      sessions,
		Logger:        logger,
		FlashSaleDays: cfg.Orchestrator.FlashSaleDays,
	})
	detector := intent.NewClassifier(llmprovider.NewGeminiAdapter(intentClient), logger)
	orch := orchestrator.New(llm, registry, sessions, detector, market, orchestrator.Config{
		MaxToolIterations: cfg.Orchestrator.MaxToolIterations,
		PaymentDelay:      time.Duration(cfg.Orchestrator.PaymentDelaySeconds) * time.Second,
	}, logger)

	chatHandler, hub := chatHTTP.New(logger, orch, sessions)
	orch.SetNotifier(hub)

	// 10. HTTP server
	srv, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		StaticDir:   cfg.Static.Dir,
		StaticURL:   cfg.Static.BaseURL,
		ChatHandler: chatHandler,
		Middleware:  middleware.New(logger, cfg.RateLimit),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newGeminiClient builds a direct Gemini client from the highest-priority
// enabled gemini provider entry. A non-empty model overrides the provider's
// configured model.
func newGeminiClient(cfg *config.Config, model string) (gemini.IGemini, error) {
	for _, p := range cfg.LLM.Providers {
		if p.Enabled && p.Name == "gemini" {
			if model == "" {
				model = p.Model
			}
			return gemini.New(gemini.Config{
				APIKey: p.APIKey,
				Model:  model,
			})
		}
	}
	return nil, fmt.Errorf("no enabled gemini provider configured")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
