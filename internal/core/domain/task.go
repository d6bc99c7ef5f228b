package domain

import "time"

// IngestTask represents a queued scan report awaiting ingestion by a worker.
type IngestTask struct {
	// ID is the unique identifier for this task
	ID string `json:"id"`

	// ScanDate is the calendar date of the report (YYYY-MM-DD)
	ScanDate string `json:"scan_date"`

	// ScanTime is the slot the report covers. Empty means the worker
	// derives slots from the markdown itself.
	ScanTime ScanTime `json:"scan_time,omitempty"`

	// RawMarkdown is the full report text as submitted
	RawMarkdown string `json:"raw_markdown"`

	// EnqueuedAt is when the task was added to the queue
	EnqueuedAt time.Time `json:"enqueued_at"`
}
