package market

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrPhoneTaken indicates a user with the phone already exists.
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrPastDeliveryDate rejects orders with a delivery date before today.
	ErrPastDeliveryDate = errors.New("delivery date is in the past")

	// ErrOutOfStock indicates a product has no available inventory.
	ErrOutOfStock = errors.New("product out of stock")
)
