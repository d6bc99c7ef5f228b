package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// MockScanStore is a mock implementation of ScanStore for testing
type MockScanStore struct {
	mu      sync.RWMutex
	records map[string]*domain.ScanRecord // key: date:slot

	// ReadErrs forces ReadSlotDocuments to fail for specific dates
	ReadErrs map[string]error
}

// NewMockScanStore creates a new MockScanStore
func NewMockScanStore() *MockScanStore {
	return &MockScanStore{
		records:  make(map[string]*domain.ScanRecord),
		ReadErrs: make(map[string]error),
	}
}

func (m *MockScanStore) Upsert(ctx context.Context, record *domain.ScanRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := record.ScanDate + ":" + string(record.ScanTime)
	stored := *record
	if prev, ok := m.records[key]; ok {
		stored.ID = prev.ID
	} else if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	m.records[key] = &stored
	return stored.ID, nil
}

func (m *MockScanStore) ReadSlotDocuments(ctx context.Context, date string) ([]*domain.ScanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.ReadErrs[date]; err != nil {
		return nil, err
	}
	var result []*domain.ScanRecord
	for _, rec := range m.records {
		if rec.ScanDate == date {
			result = append(result, rec)
		}
	}
	if len(result) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ScanTime.Order() != result[j].ScanTime.Order() {
			return result[i].ScanTime.Order() < result[j].ScanTime.Order()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockScanStore) ListAvailableDates(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var dates []string
	for _, rec := range m.records {
		if !seen[rec.ScanDate] {
			seen[rec.ScanDate] = true
			dates = append(dates, rec.ScanDate)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *MockScanStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MockScanStore) Close() error {
	return nil
}
