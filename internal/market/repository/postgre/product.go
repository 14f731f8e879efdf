package postgre

import (
	"context"

	"horticulture-assistant/internal/market"
)

// ListProducts returns the whole catalog ordered by name.
func (r *implRepository) ListProducts(ctx context.Context) ([]market.Product, error) {
	var products []market.Product
	err := r.db.WithContext(ctx).Order("product_name").Find(&products).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("ListProducts"), err)
		return nil, err
	}
	return products, nil
}

// GetProductByName finds a product by case-insensitive exact name.
func (r *implRepository) GetProductByName(ctx context.Context, name string) (market.Product, error) {
	var product market.Product
	err := r.db.WithContext(ctx).Where("LOWER(product_name) = LOWER(?)", name).First(&product).Error
	if err != nil {
		return market.Product{}, translateErr(err)
	}
	return product, nil
}

// SearchProducts matches by product name or category substring, so queries
// like "vegetables" list the whole category.
func (r *implRepository) SearchProducts(ctx context.Context, query string) ([]market.Product, error) {
	pattern := "%" + query + "%"
	var products []market.Product
	err := r.db.WithContext(ctx).
		Where("product_name ILIKE ? OR category ILIKE ?", pattern, pattern).
		Find(&products).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("SearchProducts"), err)
		return nil, err
	}
	return products, nil
}
