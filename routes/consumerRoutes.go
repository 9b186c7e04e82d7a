package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/controllers"
	"github.com/milletmart/milletmart-api/middlewares"
	"github.com/milletmart/milletmart-api/models"
)

func ConsumerRoutes(server *gin.Engine) {
	consumer := server.Group("/consumer", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleConsumer))
	{
		consumer.GET("/dashboard", controllers.ConsumerDashboard)
		consumer.GET("/products", controllers.GetProducts)
		consumer.GET("/products/:id", controllers.GetProduct)
		consumer.GET("/cart", controllers.GetCart)
		consumer.POST("/cart", controllers.AddToCart)
		consumer.PATCH("/cart/:productId", controllers.UpdateCartItem)
		consumer.DELETE("/cart/:productId", controllers.RemoveCartItem)
		consumer.POST("/checkout", controllers.Checkout)
		consumer.GET("/orders", controllers.GetMyOrders)
		consumer.GET("/orders/:orderId", controllers.GetOrder)
		consumer.POST("/adoptions", controllers.AdoptFarmer)
		consumer.DELETE("/adoptions/:farmerId", controllers.UnadoptFarmer)
		consumer.GET("/adoptions", controllers.GetAdoptedFarmers)
		consumer.GET("/rewards", controllers.ConsumerRewards)
		consumer.GET("/health-advisor", controllers.HealthAdvisor)
		consumer.POST("/chatbot", controllers.SendChatMessage)
		consumer.GET("/chatbot", controllers.GetChatHistory)
	}
}
