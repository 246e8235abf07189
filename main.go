package main

import (
	"log"
	"net/http"
	"os"

	"uninest/config"
	"uninest/jobs"
	"uninest/models"
	"uninest/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	err := config.DB.AutoMigrate(
		&models.User{},
		&models.University{},
		&models.Hostel{},
		&models.HostelImage{},
		&models.RoomType{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file, using process environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	config.InitWebSocket(router, m)

	bookingService := routes.SetupRoutes(router, config.DB, config.RedisClient, m)

	jobs.SetBookingCompleter(bookingService)
	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
