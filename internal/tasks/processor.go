package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"bostonfood/internal/config"
	"bostonfood/internal/ingest"
	"bostonfood/internal/pkg/ckan"
	"bostonfood/internal/snapshot"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	DB         *gorm.DB
	config     *config.Config
	ckanClient *ckan.Client
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(db *gorm.DB, config *config.Config) *TaskProcessor {
	return &TaskProcessor{
		DB:         db,
		config:     config,
		ckanClient: ckan.New(config.APIEndpoint, config.ResourceID, config.APIToken),
	}
}

// HandleDailyUpdateTask runs the whole pipeline: fetch everything from the
// API, write the snapshot files, then append previously-unseen rows to the
// database.
func (p *TaskProcessor) HandleDailyUpdateTask(ctx context.Context, t *asynq.Task) error {
	var payload DailyUpdatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	log.Printf("Starting daily update for %+v", payload)

	records, err := p.ckanClient.FetchAll()
	if err != nil {
		log.Printf("failed to fetch inspection data: %v", err)
		return err
	}

	latest, err := snapshot.Write(p.config.RawDataDir, records)
	if err != nil {
		log.Printf("failed to write snapshot: %v", err)
		return err
	}
	log.Printf("Latest data saved to %s", latest)

	stats, err := ingest.UpdateFromSnapshot(ctx, p.DB, latest)
	if err != nil {
		log.Printf("failed to update database: %v", err)
		return err
	}

	log.Printf("Daily update completed: %d inserted, %d skipped, %d total",
		stats.Inserted, stats.Skipped, stats.Total)

	return nil
}

func (p *TaskProcessor) GetCkanClient() *ckan.Client {
	return p.ckanClient
}
