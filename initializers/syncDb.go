package initializers

import (
	"log"

	"github.com/milletmart/milletmart-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
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
		&models.CropAdvisory{},
		&models.WeatherAlert{},
		&models.GovernmentScheme{},
		&models.ChatMessage{},
	)
	log.Println("Database synced successfully.")
}
