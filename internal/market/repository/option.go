package repository

import "time"

// CreateUserOptions holds parameters for registering a new user.
type CreateUserOptions struct {
	Phone    string
	Name     string
	UserType string
	Location string
}

// AddInventoryOptions holds parameters for inserting a stock lot.
type AddInventoryOptions struct {
	SupplierID    string
	ProductID     int
	QuantityKg    float64
	PricePerUnit  float64
	AvailableDate time.Time
	ExpiryDate    *time.Time
	ImageURL      string
}

// OrderItemOptions is one line of a new order.
type OrderItemOptions struct {
	ProductID    int
	QuantityKg   float64
	PricePerUnit float64
}

// CreateOrderOptions holds parameters for placing an order with its items.
type CreateOrderOptions struct {
	CustomerID       string
	DeliveryDate     time.Time
	DeliveryLocation string
	TotalAmount      float64
	Items            []OrderItemOptions
}
