package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
)

// Ensure Queue implements TaskQueue
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using PostgreSQL with SKIP LOCKED so multiple
// workers never claim the same task. This is the fallback queue when Redis
// is not available.
type Queue struct {
	db *sql.DB
}

// NewQueue creates a new PostgreSQL-backed ingest queue.
// Assumes the ingest_tasks table has been created via the schema.
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue adds an ingest task to the queue
func (q *Queue) Enqueue(ctx context.Context, task *domain.IngestTask) error {
	if task == nil {
		return errors.New("task is required")
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	query := `INSERT INTO ingest_tasks (id, payload, enqueued_at) VALUES ($1, $2, $3)`
	if _, err := q.db.ExecContext(ctx, query, task.ID, payload, task.EnqueuedAt); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// DequeueWithTimeout claims the oldest unclaimed task, waiting up to
// timeout seconds. Returns nil, nil when nothing is queued.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.IngestTask, error) {
	task, err := q.claim(ctx)
	if task != nil || err != nil {
		return task, err
	}
	if timeout <= 0 {
		return nil, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Duration(timeout) * time.Second):
		return q.claim(ctx)
	}
}

func (q *Queue) claim(ctx context.Context) (*domain.IngestTask, error) {
	// SKIP LOCKED keeps concurrent workers from fighting over one row.
	query := `
		UPDATE ingest_tasks
		SET claimed_at = now()
		WHERE id = (
			SELECT id FROM ingest_tasks
			WHERE claimed_at IS NULL
			ORDER BY enqueued_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING payload
	`

	var payload []byte
	err := q.db.QueryRowContext(ctx, query).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim task: %w", err)
	}

	var task domain.IngestTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &task, nil
}

// Ping checks if the database is reachable
func (q *Queue) Ping(ctx context.Context) error {
	return q.db.PingContext(ctx)
}

// Close closes the database connection
func (q *Queue) Close() error {
	return q.db.Close()
}
