package model

// JobStatus represents the status of a fetch job
type JobStatus string

const (
	// JobStatusPending means the job is accepted but no item has started
	JobStatusPending JobStatus = "pending"

	// JobStatusDownloading means an item transfer is in progress
	JobStatusDownloading JobStatus = "downloading"

	// JobStatusProcessing means the current item's transfer is done and
	// post-processing (transcode, tagging) is running
	JobStatusProcessing JobStatus = "processing"

	// JobStatusCompleted means the job finished; individual items may
	// still have failed (see Job.FailedItems)
	JobStatusCompleted JobStatus = "completed"

	// JobStatusError means the whole job failed
	JobStatusError JobStatus = "error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is still being worked on
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusDownloading || js == JobStatusProcessing
}

// IsTerminal returns true if the job reached a final state. A terminal
// record never changes again until the sweeper evicts it.
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusCompleted || js == JobStatusError
}
