package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/milletmart/milletmart-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FarmerProfile{},
		&models.ConsumerProfile{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.FarmerAdoption{},
		&models.ConsumerReward{},
		&models.FarmerReward{},
		&models.WeatherAlert{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, farmerID uint, name, price string, available bool) models.Product {
	t.Helper()
	product := models.Product{
		FarmerID:    farmerID,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Category:    models.CategoryGrain,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestGetOrCreateCartIdempotent(t *testing.T) {
	db := newTestDB(t)

	first, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)
	second, err := GetOrCreateCart(db, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("consumer_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Ragi flour", "50.00", true)

	_, err := AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)
	item, err := AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)

	assert.EqualValues(t, 2, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "re-adding a product must not create a second line")

	summary, err := Summary(db, 1)
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("100.00")), "got total %s", summary.Total)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := AddItem(db, 1, 999, 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAddItemUnavailableProduct(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Off-season bajra", "40.00", false)

	_, err := AddItem(db, 1, product.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Jowar", "30.00", true)

	_, err := AddItem(db, 1, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Foxtail millet", "25.00", true)

	_, err := AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)

	item, err := UpdateItemQuantity(db, 1, product.ID, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, item.Quantity)

	_, err = UpdateItemQuantity(db, 1, 999, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveItemFreesTheLine(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Kodo millet", "45.00", true)

	_, err := AddItem(db, 1, product.ID, 3)
	require.NoError(t, err)
	require.NoError(t, RemoveItem(db, 1, product.ID))

	summary, err := Summary(db, 1)
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)

	// The slot under the unique index must be reusable.
	item, err := AddItem(db, 1, product.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, item.Quantity)

	assert.ErrorIs(t, RemoveItem(db, 1, 999), ErrCartItemNotFound)
}

func TestSummaryTracksLivePriceChanges(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, 2, "Pearl millet", "50.00", true)

	_, err := AddItem(db, 1, product.ID, 2)
	require.NoError(t, err)

	summary, err := Summary(db, 1)
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("100.00")))

	err = db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("60.00")).Error
	require.NoError(t, err)

	summary, err = Summary(db, 1)
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("120.00")),
		"cart totals are live, prices only freeze at checkout")
}
