package main

import (
	"fmt"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/models"
	"bostonfood/internal/routes"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := models.Migrate(conn); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	router := routes.SetupRouter(conn, cfg)

	serverAddr := fmt.Sprintf(":%s", "8080")
	log.Printf("Starting server on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
