package driving

import (
	"context"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// ScanService provides read access to ingested scan reports
type ScanService interface {
	// GetDay returns the merged view of a calendar date. Slot documents are
	// merged in morning, midday, evening order and items are enriched with
	// blindspot info.
	GetDay(ctx context.Context, date string) (*domain.ParsedScan, error)

	// GetDaySummary returns the derived summary for a date
	GetDaySummary(ctx context.Context, date string) (*domain.ScanSummary, error)

	// ListDates returns every date with at least one scan, ascending
	ListDates(ctx context.Context) ([]string, error)

	// FramingItems returns the framing-watch items for a date, tagged with
	// the date they came from
	FramingItems(ctx context.Context, date string) ([]domain.FramingComparison, error)
}
