package dtos

import (
	"time"

	"github.com/google/uuid"
)

// BatchJob tracks the progress of an asynchronous producer import.
type BatchJob struct {
	ID          uuid.UUID            `json:"id"`
	Status      string               `json:"status"`   // pending, processing, completed, failed
	Progress    int                  `json:"progress"` // 0-100 percentage
	Total       int                  `json:"total"`
	Processed   int                  `json:"processed"`
	Created     int                  `json:"created"`
	Failed      int                  `json:"failed"`
	Errors      []ProducerImportFail `json:"errors"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt *time.Time           `json:"completed_at"`
}

// JobStatus constants
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)
