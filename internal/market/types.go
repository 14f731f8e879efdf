package market

import (
	"time"
)

// User is a registered marketplace user (customer or supplier).
type User struct {
	UserID          string    `gorm:"column:user_id;type:uuid;primaryKey"`
	Phone           string    `gorm:"column:phone;size:15;uniqueIndex;not null"`
	Name            string    `gorm:"column:name;size:100"`
	UserType        string    `gorm:"column:user_type;size:20;not null;default:customer"`
	DefaultLocation string    `gorm:"column:default_location;size:100"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

// TableName implements gorm table naming.
func (User) TableName() string { return "users" }

// Product is a catalog entry.
type Product struct {
	ProductID   int    `gorm:"column:product_id;primaryKey;autoIncrement"`
	ProductName string `gorm:"column:product_name;size:100;uniqueIndex;not null"`
	Category    string `gorm:"column:category;size:50"`
	Unit        string `gorm:"column:unit;size:20"`
}

func (Product) TableName() string { return "products" }

// Inventory is a supplier stock lot.
type Inventory struct {
	InventoryID   int        `gorm:"column:inventory_id;primaryKey;autoIncrement"`
	SupplierID    string     `gorm:"column:supplier_id;type:uuid"`
	ProductID     int        `gorm:"column:product_id"`
	QuantityKg    float64    `gorm:"column:quantity_kg;not null"`
	PricePerUnit  float64    `gorm:"column:price_per_unit;not null"`
	AvailableDate time.Time  `gorm:"column:available_date;not null"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date"`
	ImageURL      string     `gorm:"column:image_url;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	Status        string     `gorm:"column:status;size:20;not null;default:active"`

	Product *Product `gorm:"foreignKey:ProductID;references:ProductID"`
}

func (Inventory) TableName() string { return "inventory" }

// Order is a customer order.
type Order struct {
	OrderID          string    `gorm:"column:order_id;type:uuid;primaryKey"`
	CustomerID       string    `gorm:"column:customer_id;type:uuid"`
	SupplierID       *string   `gorm:"column:supplier_id;type:uuid"`
	OrderDate        time.Time `gorm:"column:order_date"`
	DeliveryDate     time.Time `gorm:"column:delivery_date;not null"`
	DeliveryLocation string    `gorm:"column:delivery_location;size:200;not null"`
	TotalAmount      float64   `gorm:"column:total_amount;not null"`
	Status           string    `gorm:"column:status;size:20;not null;default:pending"`
	PaymentMethod    string    `gorm:"column:payment_method;size:20;not null;default:COD"`
	CreatedAt        time.Time `gorm:"column:created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a single line of an order.
type OrderItem struct {
	ItemID       int     `gorm:"column:item_id;primaryKey;autoIncrement"`
	OrderID      string  `gorm:"column:order_id;type:uuid"`
	ProductID    int     `gorm:"column:product_id"`
	QuantityKg   float64 `gorm:"column:quantity_kg;not null"`
	PricePerUnit float64 `gorm:"column:price_per_unit;not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// CompetitorPrice is an observed market price sample.
type CompetitorPrice struct {
	ID               int       `gorm:"column:id;primaryKey;autoIncrement"`
	Date             time.Time `gorm:"column:date;not null"`
	ProductID        int       `gorm:"column:product_id"`
	ProductName      string    `gorm:"column:product_name;size:100"`
	Price            float64   `gorm:"column:price;not null"`
	SourceMarketType string    `gorm:"column:source_market_type;size:50"`
	LocationDetail   string    `gorm:"column:location_detail;size:100"`
}

func (CompetitorPrice) TableName() string { return "competitor_pricing" }

// TransactionRecord is a historical marketplace transaction.
type TransactionRecord struct {
	TransactionID    int       `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	OrderDate        time.Time `gorm:"column:order_date;not null"`
	ProductID        int       `gorm:"column:product_id"`
	ProductName      string    `gorm:"column:product_name;size:100"`
	QuantityOrdered  float64   `gorm:"column:quantity_ordered"`
	PricePerUnit     float64   `gorm:"column:price_per_unit"`
	OrderTotalAmount float64   `gorm:"column:order_total_amount"`
}

func (TransactionRecord) TableName() string { return "transaction_history" }

// Market tiers used for competitor price averages.
const (
	MarketTierFarm         = "Farm"
	MarketTierSupermarket  = "Supermarket"
	MarketTierDistribution = "Distribution Center"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Inventory statuses.
const (
	InventoryStatusActive    = "active"
	InventoryStatusSoldOut   = "sold_out"
	InventoryStatusExpired   = "expired"
	InventoryStatusWithdrawn = "withdrawn"
)

// StockItem is a supplier inventory row joined with its product.
type StockItem struct {
	InventoryID   int
	ProductID     int
	ProductName   string
	QuantityKg    float64
	PricePerUnit  float64
	AvailableDate time.Time
	ExpiryDate    *time.Time
	Status        string
	ImageURL      string
}

// OrderLine is an order item joined with its product name.
type OrderLine struct {
	ProductID    int
	ProductName  string
	QuantityKg   float64
	PricePerUnit float64
}

// OrderSummary is an order with its lines, shaped for conversational replies.
type OrderSummary struct {
	OrderID          string
	DeliveryDate     time.Time
	DeliveryLocation string
	TotalAmount      float64
	Status           string
	Items            []OrderLine
}

// ScheduleEntry is a confirmed delivery in a supplier's schedule.
type ScheduleEntry struct {
	OrderID          string
	DeliveryDate     time.Time
	DeliveryLocation string
	TotalAmount      float64
}

// PricingInsight is the pricing recommendation for a product.
type PricingInsight struct {
	ProductID       int      `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Recommended     float64  `json:"recommended"`
	FarmAvg         *float64 `json:"farm_avg"`
	SupermarketAvg  *float64 `json:"supermarket_avg"`
	DistributionAvg *float64 `json:"distribution_avg"`
	HistoricalAvg   *float64 `json:"historical_avg"`
}

// FlashSaleSuggestion is a discount proposal for stock nearing expiry.
type FlashSaleSuggestion struct {
	InventoryID     int     `json:"inventory_id"`
	ProductName     string  `json:"product_name"`
	QuantityKg      float64 `json:"quantity_kg"`
	CurrentPrice    float64 `json:"current_price"`
	DiscountPercent int     `json:"discount_percent"`
	SalePrice       float64 `json:"sale_price"`
	DaysLeft        int     `json:"days_left"`
}
