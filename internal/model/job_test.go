package model

import (
	"testing"
	"time"
)

func TestNewJob(t *testing.T) {
	before := time.Now()
	job := NewJob("job-123")

	if job.ID != "job-123" {
		t.Errorf("Expected ID to be 'job-123', got '%s'", job.ID)
	}

	if job.Status != JobStatusPending {
		t.Errorf("Expected status to be pending, got %s", job.Status)
	}

	if job.Progress != 0 {
		t.Errorf("Expected progress 0, got %f", job.Progress)
	}

	if job.CreatedAt.Before(before) {
		t.Errorf("Expected CreatedAt to be stamped at creation, got %v", job.CreatedAt)
	}

	if job.FailedItems == nil || len(job.FailedItems) != 0 {
		t.Errorf("Expected empty failed items slice, got %v", job.FailedItems)
	}
}

func TestJob_Clone(t *testing.T) {
	total := int64(1000)
	done := int64(250)
	rate := 512.0
	eta := 12

	job := NewJob("job-456")
	job.Status = JobStatusDownloading
	job.Progress = 25
	job.TotalBytes = &total
	job.DownloadedBytes = &done
	job.TransferRate = &rate
	job.ETASec = &eta
	job.FailedItems = append(job.FailedItems, "item 2: timeout")

	clone := job.Clone()

	if clone.ID != job.ID || clone.Progress != job.Progress {
		t.Errorf("Clone lost fields: %+v", clone)
	}

	// Mutations on the original must not show through the clone.
	*job.TotalBytes = 9999
	job.FailedItems[0] = "changed"
	job.FailedItems = append(job.FailedItems, "item 3: gone")

	if *clone.TotalBytes != 1000 {
		t.Errorf("Expected clone TotalBytes 1000, got %d", *clone.TotalBytes)
	}

	if clone.FailedItems[0] != "item 2: timeout" {
		t.Errorf("Expected clone failed item preserved, got '%s'", clone.FailedItems[0])
	}

	if len(clone.FailedItems) != 1 {
		t.Errorf("Expected clone to keep 1 failed item, got %d", len(clone.FailedItems))
	}
}

func TestJob_Clone_NilTelemetry(t *testing.T) {
	job := NewJob("job-789")
	clone := job.Clone()

	if clone.TotalBytes != nil || clone.DownloadedBytes != nil || clone.TransferRate != nil || clone.ETASec != nil {
		t.Error("Expected nil telemetry to stay nil on clone")
	}
}
