package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driving"
)

// Ensure digestService implements DigestService
var _ driving.DigestService = (*digestService)(nil)

// digestService implements the DigestService interface
type digestService struct {
	scans  driving.ScanService
	logger *slog.Logger
}

// NewDigestService creates a new DigestService
func NewDigestService(scans driving.ScanService, logger *slog.Logger) driving.DigestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &digestService{
		scans:  scans,
		logger: logger,
	}
}

// topCategoryLimit caps the weekly category leaderboard.
const topCategoryLimit = 5

// AggregateRange builds the weekly rollup for [from, to] inclusive
func (s *digestService) AggregateRange(ctx context.Context, from, to string) (*domain.WeeklySummary, error) {
	dates := domain.DateRange(from, to)
	if dates == nil {
		return nil, fmt.Errorf("%w: invalid range %q..%q", domain.ErrInvalidInput, from, to)
	}

	// Fetch every date concurrently. A date without scans, or one that
	// fails outright, is skipped rather than aborting the whole rollup.
	scans := make([]*domain.ParsedScan, len(dates))
	var wg sync.WaitGroup
	for i, date := range dates {
		wg.Add(1)
		go func(i int, date string) {
			defer wg.Done()
			scan, err := s.scans.GetDay(ctx, date)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					s.logger.Warn("skipping date in weekly rollup", "date", date, "error", err)
				}
				return
			}
			scans[i] = scan
		}(i, date)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &domain.WeeklySummary{
		From:             from,
		To:               to,
		TopCategories:    []domain.CategoryCount{},
		CommonBlindspots: []domain.RegionCount{},
	}

	categoryCounts := make(map[string]int)
	blindspotCounts := make(map[string]int)
	var storyOfWeek *domain.FramingComparison
	storyTier := 0 // 3: high+framing, 2: framing, 1: high

	for _, scan := range scans {
		if scan == nil {
			continue
		}
		summary.ScanDays++
		summary.TotalItems += len(scan.Items)

		for _, item := range scan.Items {
			categoryCounts[item.Category]++
			if item.HasBlindspot() {
				summary.BlindspotItems++
				for _, region := range item.Blindspot.MissingFrom {
					blindspotCounts[region]++
				}
			}

			tier := 0
			switch {
			case item.Significance == domain.SignificanceHigh && item.HasFramingWatch():
				tier = 3
			case item.HasFramingWatch():
				tier = 2
			case item.Significance == domain.SignificanceHigh:
				tier = 1
			}
			// Earlier dates and earlier items win ties within a tier.
			if tier > storyTier {
				storyTier = tier
				storyOfWeek = &domain.FramingComparison{
					Item:        item,
					ScanDate:    scan.Date,
					DisplayDate: scan.DisplayDate,
				}
			}
		}
	}

	summary.StoryOfWeek = storyOfWeek
	summary.TopCategories = rankCategories(categoryCounts)
	summary.CommonBlindspots = rankBlindspots(blindspotCounts)
	return summary, nil
}

// rankCategories orders categories by count, breaking ties by canonical
// taxonomy order, and keeps the top five.
func rankCategories(counts map[string]int) []domain.CategoryCount {
	ranked := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		ri, rj := domain.CategoryRank(ranked[i].Category), domain.CategoryRank(ranked[j].Category)
		if ri != rj {
			return ri < rj
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	return ranked
}

// rankBlindspots orders missing regions by how often they were blind,
// breaking ties by region universe order.
func rankBlindspots(counts map[string]int) []domain.RegionCount {
	universeRank := make(map[string]int, len(domain.RegionUniverse))
	for i, region := range domain.RegionUniverse {
		universeRank[region] = i
	}

	ranked := make([]domain.RegionCount, 0, len(counts))
	for region, count := range counts {
		ranked = append(ranked, domain.RegionCount{Region: region, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return universeRank[ranked[i].Region] < universeRank[ranked[j].Region]
	})
	return ranked
}
