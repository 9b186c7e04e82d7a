package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/controllers"
	"github.com/milletmart/milletmart-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup/farmer", controllers.RegisterFarmer)
		auth.POST("/signup/consumer", controllers.RegisterConsumer)
		auth.POST("/login", controllers.Login)
	}

	authed := server.Group("/auth", middlewares.RequireAuth())
	{
		authed.POST("/logout", controllers.Logout)
		authed.GET("/profile", controllers.GetProfile)
		authed.POST("/profile-picture", controllers.UploadProfilePicture)
	}
}
