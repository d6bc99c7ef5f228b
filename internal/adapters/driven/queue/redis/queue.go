package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
)

// taskList is the Redis list holding pending ingest tasks, newest at the
// head. Workers pop from the tail, so delivery is FIFO.
const taskList = "scanwatch:ingest"

// Verify interface compliance
var _ driven.TaskQueue = (*Queue)(nil)

// Queue implements TaskQueue using a Redis list. Tasks are serialized as
// JSON; BRPOP gives workers a blocking dequeue with a timeout.
type Queue struct {
	client *redis.Client
}

// NewQueue creates a new Redis-backed ingest queue
func NewQueue(client *redis.Client) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Queue{client: client}, nil
}

// Enqueue adds an ingest task to the queue
func (q *Queue) Enqueue(ctx context.Context, task *domain.IngestTask) error {
	if task == nil {
		return errors.New("task is required")
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, taskList, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// DequeueWithTimeout pops the oldest task, waiting up to timeout seconds.
// Returns nil, nil when the timeout expires with nothing queued.
func (q *Queue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.IngestTask, error) {
	if timeout <= 0 {
		timeout = 1
	}

	result, err := q.client.BRPop(ctx, time.Duration(timeout)*time.Second, taskList).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}

	// BRPOP returns [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply: %v", result)
	}

	var task domain.IngestTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return &task, nil
}

// Ping checks if Redis is reachable
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (q *Queue) Close() error {
	return q.client.Close()
}
