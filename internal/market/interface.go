package market

import (
	"context"
	"time"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Users
	RegisterUser(ctx context.Context, input RegisterUserInput) (RegisterUserOutput, error)
	GetUserByPhone(ctx context.Context, phone string) (User, error)

	// Catalog
	ListProducts(ctx context.Context) ([]Product, error)
	SearchCatalog(ctx context.Context, query string) ([]ProductListing, error)
	ResolveProduct(ctx context.Context, name string, threshold float64) (ProductMatch, error)

	// Orders
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (OrderReceipt, error)
	CustomerOrders(ctx context.Context, customerID, status string, from, to *time.Time) ([]OrderSummary, error)
	ConfirmOrder(ctx context.Context, orderID string) error

	// Supplier stock
	AddStock(ctx context.Context, input AddStockInput) (AddStockOutput, error)
	SupplierStock(ctx context.Context, supplierID string) ([]StockItem, error)
	ExpiringStock(ctx context.Context, supplierID string, withinDays int) ([]StockItem, error)
	SupplierSchedule(ctx context.Context, supplierID string, start, end time.Time) ([]ScheduleEntry, error)

	// Pricing
	PricingInsights(ctx context.Context, product Product) (PricingInsight, error)
	SuggestFlashSales(ctx context.Context, supplierID string, daysThreshold int) ([]FlashSaleSuggestion, error)
}
