package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/models"
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

	log.Printf("Initialized schema in %s", cfg.DatabasePath)
}
