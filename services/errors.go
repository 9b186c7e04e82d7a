package services

import "errors"

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)
