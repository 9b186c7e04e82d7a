package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/milletmart/milletmart-api/initializers"
	"github.com/milletmart/milletmart-api/middlewares"
	"github.com/milletmart/milletmart-api/routes"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.ConnectToRedis()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.milletmart.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.RequestMetrics())
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ConsumerRoutes(server)
	routes.FarmerRoutes(server)
	server.Run()
}
