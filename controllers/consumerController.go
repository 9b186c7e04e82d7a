package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/models"
	"github.com/milletmart/milletmart-api/services"
	"gorm.io/gorm"
)

const chatbotReply = "Our millet advisor is still in training. A nutritionist will get back to you soon!"

// ConsumerDashboard aggregates the consumer's cart, orders, adoptions and
// reward balance in one payload.
func ConsumerDashboard(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := services.GetOrCreateCart(initializers.DB, consumerID)
	if err != nil {
		log.Println("Dashboard cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var cartItemsCount int64
	err = initializers.DB.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).
		Count(&cartItemsCount).Error
	if err != nil {
		log.Println("Dashboard cart count error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var ordersCount int64
	err = initializers.DB.Model(&models.Order{}).
		Where("consumer_id = ?", consumerID).
		Count(&ordersCount).Error
	if err != nil {
		log.Println("Dashboard order count error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var adoptedFarmersCount int64
	err = initializers.DB.Model(&models.FarmerAdoption{}).
		Where("consumer_id = ? AND active = ?", consumerID, true).
		Distinct("farmer_id").
		Count(&adoptedFarmersCount).Error
	if err != nil {
		log.Println("Dashboard adoption count error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	rewardPoints, err := services.ConsumerRewardBalance(initializers.DB, consumerID)
	if err != nil {
		log.Println("Dashboard reward balance error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var recommendedProducts []models.Product
	err = initializers.DB.Where("is_available = ?", true).Limit(4).Find(&recommendedProducts).Error
	if err != nil {
		log.Println("Dashboard recommendation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var recentOrders []models.Order
	err = initializers.DB.Where("consumer_id = ?", consumerID).
		Order("created_at desc").
		Limit(5).
		Find(&recentOrders).Error
	if err != nil {
		log.Println("Dashboard recent order error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cartItemsCount":      cartItemsCount,
		"ordersCount":         ordersCount,
		"adoptedFarmersCount": adoptedFarmersCount,
		"rewardPoints":        rewardPoints,
		"recommendedProducts": recommendedProducts,
		"recentOrders":        recentOrders,
	})
}

type AdoptFarmerInput struct {
	FarmerID uint `json:"farmerId" binding:"required"`
}

// AdoptFarmer records a new adoption. Historical rows for the same pair are
// kept; every adoption appends a fresh active row.
func AdoptFarmer(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input AdoptFarmerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	var farmer models.User
	err := initializers.DB.
		Where("id = ? AND role = ?", input.FarmerID, models.RoleFarmer).
		First(&farmer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Farmer not found")
		} else {
			log.Println("Farmer lookup error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	adoption := models.FarmerAdoption{
		ConsumerID: consumerID,
		FarmerID:   farmer.ID,
		Active:     true,
	}
	if err := initializers.DB.Create(&adoption).Error; err != nil {
		log.Println("Adoption create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":  "You have adopted " + farmer.Username + ".",
		"adoption": adoption,
	})
}

// UnadoptFarmer deactivates every active adoption row for the pair, keeping
// the rows themselves as history.
func UnadoptFarmer(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	farmerID, err := strconv.Atoi(ctx.Param("farmerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid farmer ID")
		return
	}

	result := initializers.DB.Model(&models.FarmerAdoption{}).
		Where("consumer_id = ? AND farmer_id = ? AND active = ?", consumerID, farmerID, true).
		Update("active", false)
	if result.Error != nil {
		log.Println("Adoption deactivate error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "No active adoption for this farmer")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Adoption ended."})
}

func GetAdoptedFarmers(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var adoptions []models.FarmerAdoption
	err := initializers.DB.
		Preload("Farmer").
		Where("consumer_id = ? AND active = ?", consumerID, true).
		Order("created_at desc").
		Find(&adoptions).Error
	if err != nil {
		log.Println("Adoption list error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"adoptions": adoptions})
}

func ConsumerRewards(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var entries []models.ConsumerReward
	err := initializers.DB.
		Where("consumer_id = ?", consumerID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		log.Println("Reward ledger error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	balance, err := services.ConsumerRewardBalance(initializers.DB, consumerID)
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

// HealthAdvisor is a placeholder: personalised advice is not built yet, so
// it echoes the stored preferences alongside a notice.
func HealthAdvisor(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var profile models.ConsumerProfile
	if err := initializers.DB.Where("user_id = ?", consumerID).First(&profile).Error; err != nil {
		log.Println("Consumer profile error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":           "Personalised millet health advice is not available yet.",
		"healthPreferences": profile.HealthPreferences,
	})
}

type ChatMessageInput struct {
	Message string `json:"message" binding:"required"`
}

// SendChatMessage stores the consumer's message and answers with a canned
// reply; there is no assistant behind this yet.
func SendChatMessage(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input ChatMessageInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	userMessage := models.ChatMessage{
		UserID:        consumerID,
		Message:       input.Message,
		IsUserMessage: true,
	}
	reply := models.ChatMessage{
		UserID:        consumerID,
		Message:       chatbotReply,
		IsUserMessage: false,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userMessage).Error; err != nil {
			return err
		}
		return tx.Create(&reply).Error
	})
	if err != nil {
		log.Println("Chat message error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"messages": []models.ChatMessage{userMessage, reply}})
}

func GetChatHistory(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var messages []models.ChatMessage
	err := initializers.DB.
		Where("user_id = ?", consumerID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Println("Chat history error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"messages": messages})
}
