package services

import (
	"strings"
	"testing"

	"github.com/milletmart/milletmart-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckoutSnapshotsPricesAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	grain := seedProduct(t, db, 2, "Finger millet", "50.00", true)
	flour := seedProduct(t, db, 3, "Bajra flour", "30.00", true)

	_, err := AddItem(db, 1, grain.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, 1, flour.ID, 1)
	require.NoError(t, err)

	order, err := Checkout(db, 1, CheckoutInfo{
		ShippingAddress: "12 Market Road, Pune",
		Phone:           "+911234567890",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("130.00")), "got total %s", order.TotalAmount)
	assert.True(t, strings.HasPrefix(order.PaymentID, "PAY-"))
	require.Len(t, order.Items, 2)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining, "checkout must clear the cart")

	// A later catalog price change must not touch the placed order.
	err = db.Model(&models.Product{}).
		Where("id = ?", grain.ID).
		Update("price", decimal.RequireFromString("99.00")).Error
	require.NoError(t, err)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("130.00")))
	for _, item := range stored.Items {
		if item.ProductID == grain.ID {
			assert.True(t, item.Price.Equal(decimal.RequireFromString("50.00")))
		}
	}
}

func TestCheckoutAccruesRewards(t *testing.T) {
	db := newTestDB(t)
	grain := seedProduct(t, db, 2, "Finger millet", "50.00", true)
	flour := seedProduct(t, db, 3, "Bajra flour", "30.00", true)

	_, err := AddItem(db, 1, grain.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, 1, flour.ID, 1)
	require.NoError(t, err)

	_, err = Checkout(db, 1, CheckoutInfo{ShippingAddress: "addr", Phone: "000"})
	require.NoError(t, err)

	consumerBalance, err := ConsumerRewardBalance(db, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 13, consumerBalance)

	grainFarmerBalance, err := FarmerRewardBalance(db, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 10, grainFarmerBalance)

	flourFarmerBalance, err := FarmerRewardBalance(db, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, flourFarmerBalance)
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	db := newTestDB(t)

	// No cart at all.
	_, err := Checkout(db, 1, CheckoutInfo{ShippingAddress: "addr", Phone: "000"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// A cart that exists but has no items.
	_, err = GetOrCreateCart(db, 1)
	require.NoError(t, err)
	_, err = Checkout(db, 1, CheckoutInfo{ShippingAddress: "addr", Phone: "000"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutKeepsSuppliedPaymentID(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Proso millet", "20.00", true)

	_, err := AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)

	order, err := Checkout(db, 1, CheckoutInfo{
		ShippingAddress: "addr",
		Phone:           "000",
		PaymentID:       "UPI-REF-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "UPI-REF-42", order.PaymentID)
}

func TestAdvanceOrderStatus(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{ConsumerID: 1, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	updated, err := AdvanceOrderStatus(db, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	// Skipping shipped is not allowed.
	_, err = AdvanceOrderStatus(db, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err = AdvanceOrderStatus(db, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	updated, err = AdvanceOrderStatus(db, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// Delivered is terminal.
	_, err = AdvanceOrderStatus(db, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{ConsumerID: 1, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)

	updated, err := AdvanceOrderStatus(db, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	_, err = AdvanceOrderStatus(db, order.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceOrderStatusUnknownOrder(t *testing.T) {
	db := newTestDB(t)

	_, err := AdvanceOrderStatus(db, 999, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRewardBalanceStartsAtZero(t *testing.T) {
	db := newTestDB(t)

	balance, err := ConsumerRewardBalance(db, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)

	balance, err = FarmerRewardBalance(db, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 0, balance)
}
