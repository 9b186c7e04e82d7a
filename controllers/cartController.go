package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/services"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  uint `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity uint `json:"quantity" binding:"required"`
}

// AddToCart puts a product in the calling consumer's cart, defaulting to a
// single unit when no quantity is given.
func AddToCart(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input AddToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	item, err := services.AddItem(initializers.DB, consumerID, input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		case errors.Is(err, services.ErrProductUnavailable):
			sendErrorResponse(ctx, http.StatusBadRequest, "Product is not available")
		default:
			log.Println("Add to cart error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Product added to your cart.",
		"item":    item,
	})
}

func GetCart(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	summary, err := services.Summary(initializers.DB, consumerID)
	if err != nil {
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": summary})
}

func UpdateCartItem(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input UpdateCartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	item, err := services.UpdateItemQuantity(initializers.DB, consumerID, uint(productID), input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartItemNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		case errors.Is(err, services.ErrInvalidQuantity):
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
		default:
			log.Println("Cart update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Cart item quantity updated",
		"item":    item,
	})
}

func RemoveCartItem(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := services.RemoveItem(initializers.DB, consumerID, uint(productID)); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
			return
		}
		log.Println("Cart item delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}
