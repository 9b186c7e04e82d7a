package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/milletmart/milletmart-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// One reward point is earned per this many currency units spent or sold.
const rewardPointRate = 10

var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

type CheckoutInfo struct {
	ShippingAddress string
	Phone           string
	PaymentID       string
}

// Checkout converts the consumer's cart into an order. Price snapshots,
// order creation, reward accrual and cart clearing all happen inside one
// transaction; either the whole purchase lands or none of it does.
func Checkout(db *gorm.DB, consumerID uint, info CheckoutInfo) (models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("consumer_id = ?", consumerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("created_at asc").
			Find(&items).Error
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		paymentID := info.PaymentID
		if paymentID == "" {
			paymentID = "PAY-" + uuid.NewString()
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		farmerTotals := make(map[uint]decimal.Decimal)
		for _, item := range items {
			lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			farmerTotals[item.Product.FarmerID] = farmerTotals[item.Product.FarmerID].Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				Price:     item.Product.Price,
				Quantity:  item.Quantity,
			})
		}

		order = models.Order{
			ConsumerID:      consumerID,
			TotalAmount:     total,
			ShippingAddress: info.ShippingAddress,
			Phone:           info.Phone,
			Status:          models.OrderStatusPending,
			PaymentID:       paymentID,
			Items:           orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if points := rewardPoints(total); points > 0 {
			reward := models.ConsumerReward{
				ConsumerID:  consumerID,
				Points:      points,
				Description: fmt.Sprintf("Order #%d", order.ID),
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}
		for farmerID, amount := range farmerTotals {
			points := rewardPoints(amount)
			if points == 0 {
				continue
			}
			reward := models.FarmerReward{
				FarmerID:    farmerID,
				Points:      points,
				Description: fmt.Sprintf("Sale on order #%d", order.ID),
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	return order, err
}

// AdvanceOrderStatus moves an order along the linear lifecycle. Cancellation
// is allowed while the order is pending or processing.
func AdvanceOrderStatus(db *gorm.DB, orderID uint, next string) (models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if !isValidTransition(order.Status, next) {
			return ErrInvalidTransition
		}
		order.Status = next
		return tx.Model(&order).Update("status", next).Error
	})
	return order, err
}

func isValidTransition(current, next string) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

func rewardPoints(amount decimal.Decimal) uint {
	points := amount.Div(decimal.NewFromInt(rewardPointRate)).IntPart()
	if points < 0 {
		return 0
	}
	return uint(points)
}
