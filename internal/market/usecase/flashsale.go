package usecase

import (
	"context"
	"time"

	"horticulture-assistant/internal/market"
)

const (
	urgentDiscountPercent  = 30
	defaultDiscountPercent = 20
)

// FlashSaleDiscount returns the discount percent for stock with the given
// number of whole days left before expiry. Stock within a day of expiring
// gets the steeper cut.
func FlashSaleDiscount(daysLeft int) int {
	if daysLeft <= 1 {
		return urgentDiscountPercent
	}
	return defaultDiscountPercent
}

// SuggestFlashSales proposes discounts for a supplier's stock expiring within
// daysThreshold days.
func (uc *implUseCase) SuggestFlashSales(ctx context.Context, supplierID string, daysThreshold int) ([]market.FlashSaleSuggestion, error) {
	items, err := uc.repo.GetExpiringInventory(ctx, supplierID, daysThreshold)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(time.Now().UTC())
	suggestions := make([]market.FlashSaleSuggestion, 0, len(items))
	for _, it := range items {
		if it.ExpiryDate == nil {
			continue
		}
		daysLeft := int(truncateToDay(it.ExpiryDate.UTC()).Sub(today).Hours() / 24)
		pct := FlashSaleDiscount(daysLeft)
		suggestions = append(suggestions, market.FlashSaleSuggestion{
			InventoryID:     it.InventoryID,
			ProductName:     it.ProductName,
			QuantityKg:      it.QuantityKg,
			CurrentPrice:    it.PricePerUnit,
			DiscountPercent: pct,
			SalePrice:       round2(it.PricePerUnit * (1 - float64(pct)/100)),
			DaysLeft:        daysLeft,
		})
	}
	return suggestions, nil
}
