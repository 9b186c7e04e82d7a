package models

import "gorm.io/gorm"

// Cart is 1:1 with a consumer, created lazily on first use.
type Cart struct {
	gorm.Model
	ConsumerID uint       `json:"consumerId" gorm:"uniqueIndex"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem rows are unique per (cart, product); concurrent adds for the same
// product land on the same row through an upsert against this index.
type CartItem struct {
	gorm.Model
	CartID    uint    `json:"cartId" gorm:"uniqueIndex:idx_cart_product"`
	ProductID uint    `json:"productId" gorm:"uniqueIndex:idx_cart_product"`
	Quantity  uint    `json:"quantity"`
	Product   Product `json:"product"`
}
