package models

import "gorm.io/gorm"

// FarmerAdoption permits multiple rows per (consumer, farmer) pair; older
// rows are kept as history with Active set to false.
type FarmerAdoption struct {
	gorm.Model
	ConsumerID uint `json:"consumerId" gorm:"index"`
	FarmerID   uint `json:"farmerId" gorm:"index"`
	Active     bool `json:"active"`

	Farmer User `json:"farmer" gorm:"foreignKey:FarmerID"`
}

// Reward ledgers are append-only; the current balance is the sum over rows.

type ConsumerReward struct {
	gorm.Model
	ConsumerID  uint   `json:"consumerId" gorm:"index"`
	Points      uint   `json:"points"`
	Description string `json:"description" gorm:"size:255"`
}

type FarmerReward struct {
	gorm.Model
	FarmerID    uint   `json:"farmerId" gorm:"index"`
	Points      uint   `json:"points"`
	Description string `json:"description" gorm:"size:255"`
}
