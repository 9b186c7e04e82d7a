package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the MilletMart API, connecting millet farmers and consumers.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup/farmer" - Register a farmer account
- POST "/auth/signup/consumer" - Register a consumer account
- POST "/auth/login" - Access user account
- POST "/auth/logout" - End the current session
- GET "/auth/profile" - View own profile
- POST "/auth/profile-picture" - Upload a profile picture

CONSUMER (consumer role required)
- GET "/consumer/dashboard" - Consumer dashboard
- GET "/consumer/products" - Browse available products
- GET "/consumer/products/:id" - Product detail
- GET "/consumer/cart" - View cart with totals
- POST "/consumer/cart" - Add a product to the cart
- PATCH "/consumer/cart/:productId" - Change a cart line quantity
- DELETE "/consumer/cart/:productId" - Remove a cart line
- POST "/consumer/checkout" - Place an order from the cart
- GET "/consumer/orders" - List own orders
- GET "/consumer/orders/:orderId" - Order detail
- POST "/consumer/adoptions" - Adopt a farmer
- DELETE "/consumer/adoptions/:farmerId" - End an adoption
- GET "/consumer/adoptions" - List adopted farmers
- GET "/consumer/rewards" - Reward ledger and balance
- GET "/consumer/health-advisor" - Health advisor (coming soon)
- POST "/consumer/chatbot" - Send a chat message
- GET "/consumer/chatbot" - Chat history

FARMER (farmer role required)
- GET "/farmer/dashboard" - Farmer dashboard
- POST "/farmer/products" - Add a product
- POST "/farmer/products/:id/image" - Upload a product image
- GET "/farmer/advisories" - List own crop advisories
- POST "/farmer/advisories" - Record a crop advisory
- GET "/farmer/rewards" - Reward ledger and balance
- GET "/farmer/price-prediction" - Price prediction (coming soon)
- PATCH "/farmer/orders/:orderId/status" - Advance an order's status`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
