package model

import (
	"time"
)

// Job is the record for one accepted fetch request: a single item or a
// playlist batch. A Job is created by the launcher, mutated only by the
// orchestrator goroutine that owns it (via the registry), and read by
// pollers as a snapshot.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Progress  float64   `json:"progress"` // 0 to 100, overall across the batch
	CreatedAt time.Time `json:"created_at"`

	// In-flight (or last touched) item.
	CurrentItemName string `json:"current_item_name"`
	CurrentFilepath string `json:"current_filepath"`

	// Transfer telemetry for the in-flight item only; nil when unknown.
	TotalBytes      *int64   `json:"total_bytes"`
	DownloadedBytes *int64   `json:"downloaded_bytes"`
	TransferRate    *float64 `json:"transfer_rate"`            // bytes per second
	ETASec          *int     `json:"estimated_time_remaining"` // seconds

	// Batch accounting. BatchIndex is the 1-based cursor of the item
	// currently processing; BatchTotal is 1 for a single item.
	BatchTotal int    `json:"batch_total"`
	BatchIndex int    `json:"batch_index"`
	BatchTitle string `json:"batch_title,omitempty"`

	SucceededCount int      `json:"succeeded_count"`
	FailedItems    []string `json:"failed_items"`

	// Error is set only when the whole job fails, never for a single
	// failed batch item.
	Error string `json:"error,omitempty"`
}

// NewJob creates a pending job record with the given id
func NewJob(id string) *Job {
	return &Job{
		ID:          id,
		Status:      JobStatusPending,
		Progress:    0,
		CreatedAt:   time.Now(),
		FailedItems: make([]string, 0),
	}
}

// Clone returns a deep copy of the job. The registry hands clones to
// pollers so a snapshot never aliases the record the orchestrator is
// mutating.
func (j *Job) Clone() *Job {
	c := *j
	if j.TotalBytes != nil {
		v := *j.TotalBytes
		c.TotalBytes = &v
	}
	if j.DownloadedBytes != nil {
		v := *j.DownloadedBytes
		c.DownloadedBytes = &v
	}
	if j.TransferRate != nil {
		v := *j.TransferRate
		c.TransferRate = &v
	}
	if j.ETASec != nil {
		v := *j.ETASec
		c.ETASec = &v
	}
	c.FailedItems = make([]string, len(j.FailedItems))
	copy(c.FailedItems, j.FailedItems)
	return &c
}
