package services

import (
	"github.com/milletmart/milletmart-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartLine struct {
	Item      models.CartItem `json:"item"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type CartSummary struct {
	CartID uint            `json:"cartId"`
	Lines  []CartLine      `json:"lines"`
	Total  decimal.Decimal `json:"total"`
}

// GetOrCreateCart returns the consumer's single cart, creating it on first
// access.
func GetOrCreateCart(db *gorm.DB, consumerID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where(models.Cart{ConsumerID: consumerID}).FirstOrCreate(&cart).Error
	return cart, err
}

// AddItem puts a product into the consumer's cart. Re-adding a product
// increments the existing line instead of creating a second one; the
// increment is a single upsert against the (cart_id, product_id) unique
// index, so concurrent adds cannot produce duplicate rows.
func AddItem(db *gorm.DB, consumerID, productID, quantity uint) (models.CartItem, error) {
	var item models.CartItem
	if quantity < 1 {
		return item, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return item, err
	}
	if !product.IsAvailable {
		return item, ErrProductUnavailable
	}

	cart, err := GetOrCreateCart(db, consumerID)
	if err != nil {
		return item, err
	}

	item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return item, err
	}

	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	return item, err
}

// UpdateItemQuantity replaces the quantity of an existing cart line.
func UpdateItemQuantity(db *gorm.DB, consumerID, productID, quantity uint) (models.CartItem, error) {
	var item models.CartItem
	if quantity < 1 {
		return item, ErrInvalidQuantity
	}

	cart, err := GetOrCreateCart(db, consumerID)
	if err != nil {
		return item, err
	}

	result := db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return item, result.Error
	}
	if result.RowsAffected == 0 {
		return item, ErrCartItemNotFound
	}

	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	return item, err
}

// RemoveItem deletes a cart line. The delete is unscoped so the slot under
// the unique index is freed for a later re-add.
func RemoveItem(db *gorm.DB, consumerID, productID uint) error {
	cart, err := GetOrCreateCart(db, consumerID)
	if err != nil {
		return err
	}

	result := db.Unscoped().
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Summary lists the cart lines in insertion order with live prices. The
// grand total is recomputed on every call, never persisted.
func Summary(db *gorm.DB, consumerID uint) (CartSummary, error) {
	cart, err := GetOrCreateCart(db, consumerID)
	if err != nil {
		return CartSummary{}, err
	}

	var items []models.CartItem
	err = db.Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return CartSummary{}, err
	}

	summary := CartSummary{CartID: cart.ID, Total: decimal.Zero}
	for _, item := range items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Lines = append(summary.Lines, CartLine{Item: item, LineTotal: lineTotal})
		summary.Total = summary.Total.Add(lineTotal)
	}
	return summary, nil
}
