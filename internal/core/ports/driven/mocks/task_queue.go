package mocks

import (
	"context"
	"sync"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// MockTaskQueue is a mock implementation of TaskQueue for testing
type MockTaskQueue struct {
	mu     sync.Mutex
	tasks  []*domain.IngestTask
	closed bool
}

// NewMockTaskQueue creates a new MockTaskQueue
func NewMockTaskQueue() *MockTaskQueue {
	return &MockTaskQueue{}
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *domain.IngestTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return domain.ErrStoreUnavailable
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *MockTaskQueue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.IngestTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return nil, nil
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	return task, nil
}

func (m *MockTaskQueue) Ping(ctx context.Context) error {
	return nil
}

func (m *MockTaskQueue) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of queued tasks.
func (m *MockTaskQueue) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
