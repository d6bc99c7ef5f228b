package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driving"
	"github.com/meridian-labs/scanwatch-core/internal/scanparse"
)

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the IngestService interface
type ingestService struct {
	store  driven.ScanStore
	logger *slog.Logger
}

// NewIngestService creates a new IngestService
func NewIngestService(store driven.ScanStore, logger *slog.Logger) driving.IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		store:  store,
		logger: logger,
	}
}

// Ingest validates and stores a single slot record
func (s *ingestService) Ingest(ctx context.Context, record *domain.ScanRecord) (string, error) {
	if record == nil {
		return "", fmt.Errorf("%w: record is required", domain.ErrInvalidInput)
	}
	if !domain.ValidDate(record.ScanDate) {
		return "", fmt.Errorf("%w: scan_date must be YYYY-MM-DD, got %q", domain.ErrInvalidInput, record.ScanDate)
	}
	if record.ScanTime == "" {
		record.ScanTime = scanparse.DefaultScanTime
	}
	if !record.ScanTime.IsValid() {
		return "", fmt.Errorf("%w: scan_time must be morning, midday or evening, got %q", domain.ErrInvalidInput, record.ScanTime)
	}
	for i := range record.Items {
		item := &record.Items[i]
		if strings.TrimSpace(item.Headline) == "" {
			return "", fmt.Errorf("%w: items[%d] is missing a headline", domain.ErrInvalidInput, i)
		}
		if strings.TrimSpace(item.Category) == "" {
			return "", fmt.Errorf("%w: items[%d] is missing a category", domain.ErrInvalidInput, i)
		}
		item.Significance = domain.ParseSignificance(string(item.Significance))
		if item.Regions == nil {
			item.Regions = []string{}
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if item.Patterns == nil {
			item.Patterns = []string{}
		}
	}
	if record.Items == nil {
		record.Items = []domain.Item{}
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	id, err := s.store.Upsert(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to store scan: %w", err)
	}

	s.logger.Info("scan ingested",
		"id", id,
		"scan_date", record.ScanDate,
		"scan_time", record.ScanTime,
		"items", len(record.Items))
	return id, nil
}

// IngestMarkdown splits a raw report into slot documents and stores each one
func (s *ingestService) IngestMarkdown(ctx context.Context, date, markdown string) ([]string, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", domain.ErrInvalidInput, date)
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, fmt.Errorf("%w: markdown body is empty", domain.ErrInvalidInput)
	}

	var ids []string
	for _, doc := range scanparse.SplitSlots(markdown) {
		scan := scanparse.Parse(doc.Markdown, date, s.logger)

		record := &domain.ScanRecord{
			ScanDate:     date,
			ScanTime:     doc.Time,
			HumanSummary: scan.WeatherSummary,
			Mood:         scan.Mood,
			TopTheme:     scan.TopTheme,
			PatternOfDay: scan.PatternOfDay,
			Items:        scan.Items,
			RawMarkdown:  doc.Markdown,
		}
		if scan.FramingNote != "" {
			record.FramingWatch = &domain.FramingWatch{Note: scan.FramingNote}
		}

		id, err := s.Ingest(ctx, record)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
