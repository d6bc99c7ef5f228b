package driven

import (
	"context"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// TaskQueue handles background ingest task queuing and processing.
// Implementations can use Redis (preferred) or Postgres (fallback).
type TaskQueue interface {
	// Enqueue adds an ingest task to the queue for processing.
	Enqueue(ctx context.Context, task *domain.IngestTask) error

	// DequeueWithTimeout retrieves the next available task, waiting up to
	// timeout seconds. Returns nil, nil if the timeout is reached with no
	// tasks available.
	DequeueWithTimeout(ctx context.Context, timeout int) (*domain.IngestTask, error)

	// Ping checks if the queue backend is healthy.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}
