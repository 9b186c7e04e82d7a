package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryGrain      = "grain"
	CategoryFlour      = "flour"
	CategorySnack      = "snack"
	CategoryReadyToEat = "ready_to_eat"
	CategoryOther      = "other"
)

type Product struct {
	gorm.Model
	FarmerID      uint            `json:"farmerId" gorm:"index"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	StockQuantity uint            `json:"stockQuantity"`
	Category      string          `json:"category" gorm:"size:20"`
	ImageURL      string          `json:"imageUrl"`
	IsOrganic     bool            `json:"isOrganic"`
	IsAvailable   bool            `json:"isAvailable"`
}
