package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	gorm.Model
	ConsumerID      uint            `json:"consumerId" gorm:"index"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`
	ShippingAddress string          `json:"shippingAddress"`
	Phone           string          `json:"phone"`
	Status          string          `json:"status" gorm:"size:20;default:pending"`
	PaymentID       string          `json:"paymentId"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem.Price is the product price at the time of purchase. Catalog price
// changes after checkout must never alter a placed order.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  uint            `json:"quantity"`
}
