package driving

import (
	"context"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// DigestService aggregates scans across a date range
type DigestService interface {
	// AggregateRange builds the weekly rollup for [from, to] inclusive.
	// Dates without scans are skipped.
	AggregateRange(ctx context.Context, from, to string) (*domain.WeeklySummary, error)
}
