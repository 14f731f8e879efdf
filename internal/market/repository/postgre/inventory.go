package postgre

import (
	"context"
	"time"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

// AddInventory inserts a stock lot and returns its id.
func (r *implRepository) AddInventory(ctx context.Context, opt repository.AddInventoryOptions) (int, error) {
	inv := market.Inventory{
		SupplierID:    opt.SupplierID,
		ProductID:     opt.ProductID,
		QuantityKg:    opt.QuantityKg,
		PricePerUnit:  opt.PricePerUnit,
		AvailableDate: opt.AvailableDate,
		ExpiryDate:    opt.ExpiryDate,
		ImageURL:      opt.ImageURL,
		CreatedAt:     time.Now().UTC(),
		Status:        market.InventoryStatusActive,
	}

	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("AddInventory"), err)
		return 0, err
	}
	return inv.InventoryID, nil
}

// GetAvailableInventory returns active lots of a product already available today.
func (r *implRepository) GetAvailableInventory(ctx context.Context, productID int) ([]market.Inventory, error) {
	var lots []market.Inventory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("product_id = ? AND status = ? AND available_date <= ?",
			productID, market.InventoryStatusActive, time.Now().UTC()).
		Find(&lots).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("GetAvailableInventory"), err)
		return nil, err
	}
	return lots, nil
}

// GetSupplierInventory returns all of a supplier's lots joined with product names,
// newest availability first.
func (r *implRepository) GetSupplierInventory(ctx context.Context, supplierID string) ([]market.StockItem, error) {
	var items []market.StockItem
	err := r.db.WithContext(ctx).
		Table("inventory").
		Select(`inventory.inventory_id, inventory.product_id, products.product_name,
			inventory.quantity_kg, inventory.price_per_unit, inventory.available_date,
			inventory.expiry_date, inventory.status, inventory.image_url`).
		Joins("JOIN products ON products.product_id = inventory.product_id").
		Where("inventory.supplier_id = ?", supplierID).
		Order("inventory.available_date DESC").
		Scan(&items).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("GetSupplierInventory"), err)
		return nil, err
	}
	return items, nil
}

// GetExpiringInventory returns active lots whose expiry falls within the
// threshold window.
func (r *implRepository) GetExpiringInventory(ctx context.Context, supplierID string, withinDays int) ([]market.StockItem, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, withinDays)

	var items []market.StockItem
	err := r.db.WithContext(ctx).
		Table("inventory").
		Select(`inventory.inventory_id, inventory.product_id, products.product_name,
			inventory.quantity_kg, inventory.price_per_unit, inventory.available_date,
			inventory.expiry_date, inventory.status, inventory.image_url`).
		Joins("JOIN products ON products.product_id = inventory.product_id").
		Where("inventory.supplier_id = ? AND inventory.status = ? AND inventory.expiry_date IS NOT NULL AND inventory.expiry_date <= ?",
			supplierID, market.InventoryStatusActive, cutoff).
		Scan(&items).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("GetExpiringInventory"), err)
		return nil, err
	}
	return items, nil
}

// UpdateInventoryStatus sets a lot's status.
func (r *implRepository) UpdateInventoryStatus(ctx context.Context, inventoryID int, status string) error {
	err := r.db.WithContext(ctx).
		Model(&market.Inventory{}).
		Where("inventory_id = ?", inventoryID).
		Update("status", status).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("UpdateInventoryStatus"), err)
	}
	return err
}
