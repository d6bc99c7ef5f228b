package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driving"
	"github.com/meridian-labs/scanwatch-core/internal/scanparse"
)

// Ensure scanService implements ScanService
var _ driving.ScanService = (*scanService)(nil)

// scanService implements the ScanService interface
type scanService struct {
	store  driven.ScanStore
	logger *slog.Logger
}

// NewScanService creates a new ScanService
func NewScanService(store driven.ScanStore, logger *slog.Logger) driving.ScanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scanService{
		store:  store,
		logger: logger,
	}
}

// GetDay returns the merged view of a calendar date
func (s *scanService) GetDay(ctx context.Context, date string) (*domain.ParsedScan, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, date)
	}

	records, err := s.store.ReadSlotDocuments(ctx, date)
	if err != nil {
		return nil, err
	}

	slots := make([]*domain.ParsedScan, 0, len(records))
	for _, rec := range records {
		slots = append(slots, s.slotScan(rec))
	}

	merged := MergeSlots(slots)
	merged.Date = date
	merged.DisplayDate = domain.FormatDisplayDate(date)
	merged.Items = domain.EnrichItems(merged.Items, nil)
	return merged, nil
}

// GetDaySummary returns the derived summary for a date
func (s *scanService) GetDaySummary(ctx context.Context, date string) (*domain.ScanSummary, error) {
	scan, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}
	return domain.NewScanSummary(scan), nil
}

// ListDates returns every date with at least one scan
func (s *scanService) ListDates(ctx context.Context) ([]string, error) {
	return s.store.ListAvailableDates(ctx)
}

// FramingItems returns the framing-watch items for a date
func (s *scanService) FramingItems(ctx context.Context, date string) ([]domain.FramingComparison, error) {
	scan, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}

	comparisons := make([]domain.FramingComparison, 0)
	for _, item := range scan.Items {
		if item.HasFramingWatch() {
			comparisons = append(comparisons, domain.FramingComparison{
				Item:        item,
				ScanDate:    scan.Date,
				DisplayDate: scan.DisplayDate,
			})
		}
	}
	return comparisons, nil
}

// slotScan builds one slot's ParsedScan. Structured columns win over
// whatever was parsed out of the raw markdown.
func (s *scanService) slotScan(rec *domain.ScanRecord) *domain.ParsedScan {
	var scan *domain.ParsedScan
	if rec.RawMarkdown != "" {
		scan = scanparse.Parse(rec.RawMarkdown, rec.ScanDate, s.logger)
	} else {
		scan = &domain.ParsedScan{
			Date:         rec.ScanDate,
			DisplayDate:  domain.FormatDisplayDate(rec.ScanDate),
			NotableItems: []string{},
			Items:        []domain.Item{},
		}
	}

	if rec.Mood != "" {
		scan.Mood = rec.Mood
	}
	if rec.TopTheme != "" {
		scan.TopTheme = rec.TopTheme
	}
	if rec.HumanSummary != "" {
		scan.WeatherSummary = rec.HumanSummary
	}
	if rec.PatternOfDay != nil {
		scan.PatternOfDay = rec.PatternOfDay
	}
	if rec.FramingWatch != nil && rec.FramingWatch.Note != "" {
		scan.FramingNote = rec.FramingWatch.Note
	}
	if len(rec.Items) > 0 {
		scan.Items = rec.Items
	}
	return scan
}

// MergeSlots folds per-slot scans into a single day view. Slots must be
// given in slot order; a later slot's non-empty field overrides an earlier
// one's, items and notable bullets concatenate without dedupe.
func MergeSlots(slots []*domain.ParsedScan) *domain.ParsedScan {
	merged := &domain.ParsedScan{
		NotableItems: []string{},
		Items:        []domain.Item{},
	}

	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if merged.Date == "" {
			merged.Date = slot.Date
			merged.DisplayDate = slot.DisplayDate
		}
		if slot.TopTheme != "" {
			merged.TopTheme = slot.TopTheme
		}
		if slot.Mood != "" {
			merged.Mood = slot.Mood
		}
		if slot.WeatherSummary != "" {
			merged.WeatherSummary = slot.WeatherSummary
		}
		if slot.FlowsSummary != "" {
			merged.FlowsSummary = slot.FlowsSummary
		}
		if slot.FramingNote != "" {
			merged.FramingNote = slot.FramingNote
		}
		if slot.PatternOfDay != nil {
			merged.PatternOfDay = slot.PatternOfDay
		}
		if slot.ScanMeta != "" {
			merged.ScanMeta = slot.ScanMeta
		}
		merged.NotableItems = append(merged.NotableItems, slot.NotableItems...)
		merged.Items = append(merged.Items, slot.Items...)
	}
	return merged
}
