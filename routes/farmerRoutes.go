package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/controllers"
	"github.com/milletmart/milletmart-api/middlewares"
	"github.com/milletmart/milletmart-api/models"
)

func FarmerRoutes(server *gin.Engine) {
	farmer := server.Group("/farmer", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleFarmer))
	{
		farmer.GET("/dashboard", controllers.FarmerDashboard)
		farmer.POST("/products", controllers.CreateProduct)
		farmer.POST("/products/:id/image", controllers.UploadProductImage)
		farmer.GET("/advisories", controllers.GetCropAdvisories)
		farmer.POST("/advisories", controllers.CreateCropAdvisory)
		farmer.GET("/rewards", controllers.FarmerRewards)
		farmer.GET("/price-prediction", controllers.PricePrediction)
		farmer.PATCH("/orders/:orderId/status", controllers.UpdateOrderStatus)
	}
}
