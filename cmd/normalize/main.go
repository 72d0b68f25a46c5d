package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/maintenance"
)

// One-off migration: backfill the violation_codes lookup table from the
// denormalized fact table and report orphans.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	stats, err := maintenance.Normalize(context.Background(), conn)
	if err != nil {
		log.Fatalf("Normalization failed: %v", err)
	}

	log.Printf("Database normalization complete: %d codes in lookup table, %d orphaned rows",
		stats.LookupCodes, stats.OrphanedRows)
}
