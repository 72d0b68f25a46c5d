package main

import (
	"context"
	"log"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/ingest"
	"bostonfood/internal/models"
	"bostonfood/internal/snapshot"
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

	latest := filepath.Join(cfg.RawDataDir, snapshot.LatestName)
	stats, err := ingest.UpdateFromSnapshot(context.Background(), conn, latest)
	if err != nil {
		log.Fatalf("Database update failed: %v (run the fetch command first to download data)", err)
	}

	log.Printf("Successfully inserted %d new records", stats.Inserted)
	log.Printf("Skipped %d duplicate records", stats.Skipped)
	log.Printf("Total records in database: %d", stats.Total)
}
