package usecase

import (
	"context"
	"fmt"
	"time"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

// AddStock records a new supplier stock lot. The product name is resolved
// against the catalog, correcting minor misspellings.
func (uc *implUseCase) AddStock(ctx context.Context, input market.AddStockInput) (market.AddStockOutput, error) {
	match, err := uc.ResolveProduct(ctx, input.ProductName, productMatchThreshold)
	if err != nil {
		return market.AddStockOutput{}, fmt.Errorf("product %q: %w", input.ProductName, err)
	}

	id, err := uc.repo.AddInventory(ctx, repository.AddInventoryOptions{
		SupplierID:    input.SupplierID,
		ProductID:     match.Product.ProductID,
		QuantityKg:    input.QuantityKg,
		PricePerUnit:  input.PricePerUnit,
		AvailableDate: input.AvailableDate,
		ExpiryDate:    input.ExpiryDate,
		ImageURL:      input.ImageURL,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", uc.scope("AddStock"), err)
		return market.AddStockOutput{}, err
	}

	uc.l.Infof(ctx, "%s: lot %d of %s for %s", uc.scope("AddStock"), id, match.Product.ProductName, input.SupplierID)
	return market.AddStockOutput{InventoryID: id, Match: match}, nil
}

// SupplierStock lists all of a supplier's stock lots.
func (uc *implUseCase) SupplierStock(ctx context.Context, supplierID string) ([]market.StockItem, error) {
	return uc.repo.GetSupplierInventory(ctx, supplierID)
}

// ExpiringStock lists a supplier's active lots expiring within the window.
func (uc *implUseCase) ExpiringStock(ctx context.Context, supplierID string, withinDays int) ([]market.StockItem, error) {
	return uc.repo.GetExpiringInventory(ctx, supplierID, withinDays)
}

// SupplierSchedule lists a supplier's confirmed deliveries in the window.
func (uc *implUseCase) SupplierSchedule(ctx context.Context, supplierID string, start, end time.Time) ([]market.ScheduleEntry, error) {
	return uc.repo.GetSupplierSchedule(ctx, supplierID, start, end)
}
