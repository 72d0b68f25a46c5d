package main

import (
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"bostonfood/internal/config"
	"bostonfood/internal/pkg/ckan"
	"bostonfood/internal/snapshot"
)

func main() {
	full := flag.Bool("full", false, "fetch all data instead of an incremental update")
	daysBack := flag.Int("days", 7, "look-back window in days (informational; dedup does the filtering)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := ckan.New(cfg.APIEndpoint, cfg.ResourceID, cfg.APIToken)

	if *full {
		log.Println("Fetching ALL data from Boston API, this may take a few minutes...")
	} else {
		// The CKAN datastore cannot filter by date, so incremental runs fetch
		// everything too and rely on deduplication during the database update.
		log.Printf("Fetching data from last %d days...", *daysBack)
		log.Println("Note: fetching all data; deduplication filters records during database update")
	}

	records, err := client.FetchAll()
	if err != nil {
		log.Fatalf("Data fetch failed: %v", err)
	}

	if len(records) == 0 {
		log.Fatal("WARNING: No data fetched from API")
	}

	latest, err := snapshot.Write(cfg.RawDataDir, records)
	if err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	log.Printf("Latest data saved to %s", latest)
	log.Printf("Data fetch completed successfully (%d records)", len(records))
}
