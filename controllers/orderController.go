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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "milletmart_orders_created_total",
	Help: "Total number of orders placed through checkout.",
})

type CheckoutInput struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	PaymentID       string `json:"paymentId"`
}

// Checkout turns the caller's cart into an order in one transaction.
func Checkout(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	order, err := services.Checkout(initializers.DB, consumerID, services.CheckoutInfo{
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		PaymentID:       input.PaymentID,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Your cart is empty")
			return
		}
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		return
	}

	ordersCreatedTotal.Inc()
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"order":   order,
	})
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("Items").
		Where("consumer_id = ?", consumerID).
		Order("created_at " + sortOrder).
		Find(&orders)
	if result.Error != nil {
		log.Println("Order list error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders; orders belonging to other
// consumers are indistinguishable from missing ones.
func GetOrder(ctx *gin.Context) {
	consumerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.
		Preload("Items").
		Where("id = ? AND consumer_id = ?", orderID, consumerID).
		First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Order fetch error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

type OrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// UpdateOrderStatus advances an order along its lifecycle. Only a farmer with
// products in the order may touch it; to anyone else the order does not exist.
func UpdateOrderStatus(ctx *gin.Context) {
	farmerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input OrderStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendValidationErrors(ctx, err)
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var involvement int64
	err = initializers.DB.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.farmer_id = ?", orderID, farmerID).
		Count(&involvement).Error
	if err != nil {
		log.Println("Order ownership check error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if involvement == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	order, err := services.AdvanceOrderStatus(initializers.DB, uint(orderID), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			sendErrorResponse(ctx, http.StatusBadRequest, "Cannot move order from "+order.Status+" to "+input.Status)
		default:
			log.Println("Order status update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}
