package postgre

import (
	"context"
	"time"
)

// AverageCompetitorPrice averages a market tier's observed prices over the
// trailing window. daysBack <= 0 averages over all samples.
func (r *implRepository) AverageCompetitorPrice(ctx context.Context, productID int, marketType string, daysBack int) (float64, bool, error) {
	q := r.db.WithContext(ctx).
		Table("competitor_pricing").
		Where("product_id = ? AND source_market_type = ?", productID, marketType)
	if daysBack > 0 {
		start := time.Now().UTC().AddDate(0, 0, -daysBack)
		q = q.Where("date >= ?", start)
	}

	var avg *float64
	if err := q.Select("AVG(price)").Scan(&avg).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("AverageCompetitorPrice"), err)
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

// AverageTransactionPrice averages historical transaction prices over the
// trailing window.
func (r *implRepository) AverageTransactionPrice(ctx context.Context, productID int, daysBack int) (float64, bool, error) {
	start := time.Now().UTC().AddDate(0, 0, -daysBack)

	var avg *float64
	err := r.db.WithContext(ctx).
		Table("transaction_history").
		Where("product_id = ? AND order_date >= ?", productID, start).
		Select("AVG(price_per_unit)").
		Scan(&avg).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("AverageTransactionPrice"), err)
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}
