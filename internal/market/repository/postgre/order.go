package postgre

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

// CreateOrder inserts the order and its items in one transaction and returns
// the order id.
func (r *implRepository) CreateOrder(ctx context.Context, opt repository.CreateOrderOptions) (string, error) {
	order := market.Order{
		OrderID:          uuid.NewString(),
		CustomerID:       opt.CustomerID,
		OrderDate:        time.Now().UTC(),
		DeliveryDate:     opt.DeliveryDate,
		DeliveryLocation: opt.DeliveryLocation,
		TotalAmount:      opt.TotalAmount,
		Status:           market.OrderStatusPending,
		PaymentMethod:    "COD",
		CreatedAt:        time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range opt.Items {
			item := market.OrderItem{
				OrderID:      order.OrderID,
				ProductID:    it.ProductID,
				QuantityKg:   it.QuantityKg,
				PricePerUnit: it.PricePerUnit,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("CreateOrder"), err)
		return "", err
	}
	return order.OrderID, nil
}

// GetCustomerOrders returns a customer's orders with their lines, newest first.
// An empty status matches all statuses.
func (r *implRepository) GetCustomerOrders(ctx context.Context, customerID, status string) ([]market.OrderSummary, error) {
	q := r.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []market.Order
	if err := q.Order("order_date DESC").Find(&orders).Error; err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("GetCustomerOrders"), err)
		return nil, err
	}

	out := make([]market.OrderSummary, 0, len(orders))
	for _, o := range orders {
		var lines []market.OrderLine
		err := r.db.WithContext(ctx).
			Table("order_items").
			Select("order_items.product_id, products.product_name, order_items.quantity_kg, order_items.price_per_unit").
			Joins("JOIN products ON products.product_id = order_items.product_id").
			Where("order_items.order_id = ?", o.OrderID).
			Scan(&lines).Error
		if err != nil {
			r.l.Errorf(ctx, "%s: %v", r.scope("GetCustomerOrders"), err)
			return nil, err
		}
		out = append(out, market.OrderSummary{
			OrderID:          o.OrderID,
			DeliveryDate:     o.DeliveryDate,
			DeliveryLocation: o.DeliveryLocation,
			TotalAmount:      o.TotalAmount,
			Status:           o.Status,
			Items:            lines,
		})
	}
	return out, nil
}

// GetSupplierSchedule returns confirmed deliveries in the window, soonest first.
func (r *implRepository) GetSupplierSchedule(ctx context.Context, supplierID string, start, end time.Time) ([]market.ScheduleEntry, error) {
	var orders []market.Order
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND status = ? AND delivery_date >= ? AND delivery_date <= ?",
			supplierID, market.OrderStatusConfirmed, start, end).
		Order("delivery_date ASC").
		Find(&orders).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("GetSupplierSchedule"), err)
		return nil, err
	}

	entries := make([]market.ScheduleEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, market.ScheduleEntry{
			OrderID:          o.OrderID,
			DeliveryDate:     o.DeliveryDate,
			DeliveryLocation: o.DeliveryLocation,
			TotalAmount:      o.TotalAmount,
		})
	}
	return entries, nil
}

// UpdateOrderStatus sets the order status.
func (r *implRepository) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	err := r.db.WithContext(ctx).
		Model(&market.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.scope("UpdateOrderStatus"), err)
	}
	return err
}
