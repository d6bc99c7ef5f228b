package driving

import (
	"context"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// IngestService accepts scan reports and persists them
type IngestService interface {
	// Ingest validates and stores a single slot record, returning its ID
	Ingest(ctx context.Context, record *domain.ScanRecord) (string, error)

	// IngestMarkdown splits a raw report into slot documents and stores
	// each one, returning the record IDs in slot order
	IngestMarkdown(ctx context.Context, date, markdown string) ([]string, error)
}
