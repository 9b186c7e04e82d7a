package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/models"
	"github.com/milletmart/milletmart-api/services"
	"github.com/shopspring/decimal"
)

type farmerSales struct {
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// FarmerDashboard aggregates the farmer's catalog, sales, rewards, weather
// alerts and scheme listings. The weather refresh is best-effort: a failed
// fetch is logged and the dashboard renders without fresh alerts.
func FarmerDashboard(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var products []models.Product
	if err := initializers.DB.Where("farmer_id = ?", farmerID).Find(&products).Error; err != nil {
		log.Println("Dashboard product error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var sales farmerSales
	err := initializers.DB.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.farmer_id = ?", farmerID).
		Select("COUNT(DISTINCT order_items.order_id) AS orders, COALESCE(SUM(order_items.price * order_items.quantity), 0) AS revenue").
		Scan(&sales).Error
	if err != nil {
		log.Println("Dashboard sales error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	rewardPoints, err := services.FarmerRewardBalance(initializers.DB, farmerID)
	if err != nil {
		log.Println("Dashboard reward balance error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var weatherAlerts []models.WeatherAlert
	var profile models.FarmerProfile
	if err := initializers.DB.Where("user_id = ?", farmerID).First(&profile).Error; err == nil {
		alerts, err := services.RefreshWeatherAlerts(initializers.DB, profile.FarmLocation)
		if err != nil {
			log.Println("Weather alert refresh error:", err)
			err = initializers.DB.Where("region = ?", profile.FarmLocation).
				Order("created_at desc").
				Limit(5).
				Find(&weatherAlerts).Error
			if err != nil {
				log.Println("Weather alert lookup error:", err)
			}
		} else {
			weatherAlerts = alerts
		}
	}

	var schemes []models.GovernmentScheme
	if err := initializers.DB.Order("created_at desc").Limit(5).Find(&schemes).Error; err != nil {
		log.Println("Dashboard scheme lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products":      products,
		"productsCount": len(products),
		"ordersCount":   sales.Orders,
		"revenue":       sales.Revenue,
		"rewardPoints":  rewardPoints,
		"weatherAlerts": weatherAlerts,
		"schemes":       schemes,
	})
}

type CropAdvisoryInput struct {
	MilletType   string `json:"milletType" binding:"required,oneof=pearl finger foxtail proso kodo barnyard little sorghum other"`
	Region       string `json:"region" binding:"required"`
	SoilType     string `json:"soilType" binding:"required"`
	Season       string `json:"season" binding:"required"`
	AdvisoryText string `json:"advisoryText" binding:"required"`
}

func CreateCropAdvisory(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CropAdvisoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	advisory := models.CropAdvisory{
		FarmerID:     farmerID,
		MilletType:   input.MilletType,
		Region:       input.Region,
		SoilType:     input.SoilType,
		Season:       input.Season,
		AdvisoryText: input.AdvisoryText,
	}
	if err := initializers.DB.Create(&advisory).Error; err != nil {
		log.Println("Advisory create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"advisory": advisory})
}

func GetCropAdvisories(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var advisories []models.CropAdvisory
	err := initializers.DB.
		Where("farmer_id = ?", farmerID).
		Order("created_at desc").
		Find(&advisories).Error
	if err != nil {
		log.Println("Advisory list error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"advisories": advisories})
}

func FarmerRewards(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var entries []models.FarmerReward
	err := initializers.DB.
		Where("farmer_id = ?", farmerID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		log.Println("Reward ledger error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	balance, err := services.FarmerRewardBalance(initializers.DB, farmerID)
	if err != nil {
		log.Println("Reward balance error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"balance": balance,
		"entries": entries,
	})
}

// PricePrediction is a placeholder until a forecasting model is wired in.
func PricePrediction(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Millet price prediction is not available yet.",
	})
}
