package market

import "time"

// RegisterUserInput carries a registration request.
type RegisterUserInput struct {
	Phone    string
	Name     string
	UserType string
	Location string
}

// RegisterUserOutput reports the registered user. AlreadyRegistered is set
// when the phone was already on file, in which case the existing record is
// returned untouched.
type RegisterUserOutput struct {
	User              User
	AlreadyRegistered bool
}

// ProductListing is a catalog hit with live availability.
type ProductListing struct {
	Product         Product
	Available       bool
	MinPricePerUnit float64
	TotalQuantityKg float64
}

// ProductMatch is a resolved product, possibly corrected from a misspelled
// query.
type ProductMatch struct {
	Product   Product
	Corrected bool
	Original  string
}

// OrderRequestLine is a requested product and quantity.
type OrderRequestLine struct {
	ProductName string
	QuantityKg  float64
}

// PlaceOrderInput carries a new order request.
type PlaceOrderInput struct {
	CustomerID       string
	Items            []OrderRequestLine
	DeliveryDate     time.Time
	DeliveryLocation string
}

// OrderReceipt summarizes a placed order.
type OrderReceipt struct {
	OrderID          string
	TotalAmount      float64
	DeliveryDate     time.Time
	DeliveryLocation string
	Items            []OrderLine
}

// AddStockInput carries a new supplier stock lot.
type AddStockInput struct {
	SupplierID    string
	ProductName   string
	QuantityKg    float64
	PricePerUnit  float64
	AvailableDate time.Time
	ExpiryDate    *time.Time
	ImageURL      string
}

// AddStockOutput reports the created lot and how the product name resolved.
type AddStockOutput struct {
	InventoryID int
	Match       ProductMatch
}
