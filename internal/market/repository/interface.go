package repository

import (
	"context"
	"time"

	"horticulture-assistant/internal/market"
)

// Repository is the composed interface for the marketplace data store.
type Repository interface {
	UserRepository
	ProductRepository
	InventoryRepository
	OrderRepository
	PricingRepository
}

// UserRepository defines data access for marketplace users.
type UserRepository interface {
	CreateUser(ctx context.Context, opt CreateUserOptions) (market.User, error)
	GetUserByPhone(ctx context.Context, phone string) (market.User, error)
}

// ProductRepository defines data access for the product catalog.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]market.Product, error)
	GetProductByName(ctx context.Context, name string) (market.Product, error)
	SearchProducts(ctx context.Context, query string) ([]market.Product, error)
}

// InventoryRepository defines data access for supplier stock.
type InventoryRepository interface {
	AddInventory(ctx context.Context, opt AddInventoryOptions) (int, error)
	GetAvailableInventory(ctx context.Context, productID int) ([]market.Inventory, error)
	GetSupplierInventory(ctx context.Context, supplierID string) ([]market.StockItem, error)
	GetExpiringInventory(ctx context.Context, supplierID string, withinDays int) ([]market.StockItem, error)
	UpdateInventoryStatus(ctx context.Context, inventoryID int, status string) error
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, opt CreateOrderOptions) (string, error)
	GetCustomerOrders(ctx context.Context, customerID, status string) ([]market.OrderSummary, error)
	GetSupplierSchedule(ctx context.Context, supplierID string, start, end time.Time) ([]market.ScheduleEntry, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}

// PricingRepository defines data access for pricing signals.
type PricingRepository interface {
	// AverageCompetitorPrice averages observed prices for a market tier over the
	// trailing daysBack window; daysBack <= 0 means all time. The bool reports
	// whether any samples existed.
	AverageCompetitorPrice(ctx context.Context, productID int, marketType string, daysBack int) (float64, bool, error)

	// AverageTransactionPrice averages historical transaction prices over the
	// trailing daysBack window.
	AverageTransactionPrice(ctx context.Context, productID int, daysBack int) (float64, bool, error)
}
