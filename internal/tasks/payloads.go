package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeTaskDailyUpdate = "task:daily_update"
)

// DailyUpdatePayload is the data a daily update job needs to run
type DailyUpdatePayload struct {
	// Full forces a complete refetch. The distinction is informational: the
	// source API cannot filter by date, so every run fetches everything and
	// deduplication drops what is already stored.
	Full     *bool `json:"full"`
	DaysBack *int  `json:"days_back"`
}

// NewDailyUpdateTask creates a new task for asynq
func NewDailyUpdateTask(full *bool, daysBack *int) (*asynq.Task, error) {
	payload := DailyUpdatePayload{
		Full:     full,
		DaysBack: daysBack,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskDailyUpdate, payloadBytes), nil
}
