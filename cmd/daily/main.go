package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/db"
	"bostonfood/internal/ingest"
	"bostonfood/internal/models"
	"bostonfood/internal/pkg/ckan"
	"bostonfood/internal/snapshot"
)

// Runs the whole pipeline once: fetch from the API, snapshot to CSV, append
// new rows to the database. Meant to be run daily from cron.
func main() {
	log.Printf("Boston Health Code Violations - Daily Update, started %s", time.Now().Format("2006-01-02 15:04:05"))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("STEP 1: Fetching data from Boston Open Data API")
	client := ckan.New(cfg.APIEndpoint, cfg.ResourceID, cfg.APIToken)

	records, err := client.FetchAll()
	if err != nil {
		log.Fatalf("Daily update FAILED at data fetch stage: %v", err)
	}

	latest, err := snapshot.Write(cfg.RawDataDir, records)
	if err != nil {
		log.Fatalf("Daily update FAILED at data fetch stage: %v", err)
	}
	log.Printf("Data fetch completed successfully, latest data saved to %s", latest)

	log.Println("STEP 2: Updating database with new records")
	conn, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Daily update FAILED: %v", err)
	}
	if err := models.Migrate(conn); err != nil {
		log.Fatalf("Daily update FAILED: %v", err)
	}

	stats, err := ingest.UpdateFromSnapshot(context.Background(), conn, latest)
	if err != nil {
		log.Fatalf("Daily update FAILED at database update stage: %v", err)
	}

	log.Printf("Database update completed: %d inserted, %d skipped, %d total", stats.Inserted, stats.Skipped, stats.Total)
	log.Printf("Daily update COMPLETED SUCCESSFULLY, finished %s", time.Now().Format("2006-01-02 15:04:05"))
}
