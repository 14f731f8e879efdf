package usecase

import (
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
	"horticulture-assistant/pkg/log"
)

const marketUseCaseLogPrefix = "market.usecase"

// implUseCase is the private implementation of market.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

var _ market.UseCase = (*implUseCase)(nil)

// New creates a new market UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}

func (uc *implUseCase) scope(method string) string {
	return marketUseCaseLogPrefix + "." + method
}
