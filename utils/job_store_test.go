package utils

import (
	"testing"
	"time"

	"digicoop-backend/dtos"

	"github.com/google/uuid"
)

func TestJobStoreLifecycle(t *testing.T) {
	js := &JobStore{jobs: make(map[uuid.UUID]*dtos.BatchJob)}

	job := js.CreateJob(10)
	if job.Status != dtos.JobStatusPending || job.Total != 10 {
		t.Fatalf("new job = %+v", job)
	}

	js.SetProcessing(job.ID)
	js.UpdateJob(job.ID, func(j *dtos.BatchJob) {
		j.Processed = 5
		j.Progress = 50
	})

	got, ok := js.GetJob(job.ID)
	if !ok {
		t.Fatal("job should exist")
	}
	if got.Status != dtos.JobStatusProcessing || got.Processed != 5 || got.Progress != 50 {
		t.Errorf("job = %+v", got)
	}

	js.CompleteJob(job.ID, dtos.JobStatusCompleted)
	got, _ = js.GetJob(job.ID)
	if got.Status != dtos.JobStatusCompleted || got.Progress != 100 || got.CompletedAt == nil {
		t.Errorf("completed job = %+v", got)
	}
}

func TestJobStoreGetUnknown(t *testing.T) {
	js := &JobStore{jobs: make(map[uuid.UUID]*dtos.BatchJob)}
	if _, ok := js.GetJob(uuid.New()); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestJobStoreCleanupRemovesStaleJobs(t *testing.T) {
	js := &JobStore{jobs: make(map[uuid.UUID]*dtos.BatchJob)}

	stale := js.CreateJob(1)
	old := time.Now().Add(-2 * time.Hour)
	js.UpdateJob(stale.ID, func(j *dtos.BatchJob) {
		j.Status = dtos.JobStatusCompleted
		j.CompletedAt = &old
	})

	fresh := js.CreateJob(1)
	js.CompleteJob(fresh.ID, dtos.JobStatusCompleted)

	js.CleanupOldJobs()

	if _, ok := js.GetJob(stale.ID); ok {
		t.Error("stale completed job should be evicted")
	}
	if _, ok := js.GetJob(fresh.ID); !ok {
		t.Error("recent job should survive cleanup")
	}
}
