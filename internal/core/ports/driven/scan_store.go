package driven

import (
	"context"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// ScanStore handles scan report persistence.
// Implementations can use PostgreSQL (preferred) or a plain directory of
// markdown files (fallback for local setups).
type ScanStore interface {
	// Upsert creates or replaces the report for a (date, slot) pair and
	// returns the record ID. A second upsert for the same pair overwrites
	// the earlier report.
	Upsert(ctx context.Context, record *domain.ScanRecord) (string, error)

	// ReadSlotDocuments retrieves all slot records for a calendar date,
	// ordered by slot (morning, midday, evening) and then by creation time.
	// Returns domain.ErrNotFound when the date has no records at all.
	ReadSlotDocuments(ctx context.Context, date string) ([]*domain.ScanRecord, error)

	// ListAvailableDates returns every date with at least one record,
	// ascending.
	ListAvailableDates(ctx context.Context) ([]string, error)

	// Ping checks if the store backend is healthy.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}
