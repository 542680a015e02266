package main

import (
	"log"

	"pqapi/config"
	"pqapi/database"
	v1 "pqapi/routes/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Programming Quiz API
// @version 1.0
// @description API for running timed programming challenges
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.Load()
	database.InitDB()
	database.InitRedis()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1.Register(r)

	log.Printf("Starting server on :%s", config.ServerPort)
	if err := r.Run(":" + config.ServerPort); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
