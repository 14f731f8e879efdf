package postgre

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
	"horticulture-assistant/pkg/log"
)

type implRepository struct {
	db *gorm.DB
	l  log.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New creates a new PostgreSQL-backed Repository for the marketplace domain.
func New(db *gorm.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("market/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// Migrate creates or updates the marketplace tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&market.User{},
		&market.Product{},
		&market.Inventory{},
		&market.Order{},
		&market.OrderItem{},
		&market.CompetitorPrice{},
		&market.TransactionRecord{},
	)
}

// scope is a helper to return a method-scoped context string for logging.
func (r *implRepository) scope(method string) string {
	return fmt.Sprintf("market/repository/postgre.%s", method)
}

// translateErr maps gorm errors to domain errors.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return market.ErrNotFound
	}
	return err
}
