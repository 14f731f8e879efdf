package usecase

import (
	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/pkg/log"
)

const knowledgeUseCaseLogPrefix = "knowledge.usecase"

// Config holds the vector collection settings.
type Config struct {
	Collection string
	VectorSize int
}

// implUseCase is the private implementation of knowledge.UseCase.
type implUseCase struct {
	store    knowledge.VectorStore
	embedder knowledge.Embedder
	cfg      Config
	l        log.Logger
}

var _ knowledge.UseCase = (*implUseCase)(nil)

// New creates a new knowledge UseCase implementation.
func New(store knowledge.VectorStore, embedder knowledge.Embedder, cfg Config, l log.Logger) *implUseCase {
	return &implUseCase{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
		l:        l,
	}
}
