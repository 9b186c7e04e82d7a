package services

import (
	"github.com/milletmart/milletmart-api/models"
	"gorm.io/gorm"
)

// Balances are reduced from the append-only ledgers on demand.

func ConsumerRewardBalance(db *gorm.DB, consumerID uint) (int64, error) {
	var balance int64
	err := db.Model(&models.ConsumerReward{}).
		Where("consumer_id = ?", consumerID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	return balance, err
}

func FarmerRewardBalance(db *gorm.DB, farmerID uint) (int64, error) {
	var balance int64
	err := db.Model(&models.FarmerReward{}).
		Where("farmer_id = ?", farmerID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	return balance, err
}
