package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/maintenance"
)

// One-off cleanup: convert literal 'nan' violation codes to real NULLs.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	changed, err := maintenance.CleanSentinelCodes(context.Background(), conn)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Printf("Cleanup complete, %d rows changed", changed)
}
