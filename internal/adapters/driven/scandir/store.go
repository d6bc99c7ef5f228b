// Package scandir implements the scan store on a plain directory of
// markdown files, for local setups without Postgres. A day lives either in
// one file `2026-08-24.md` (slots split on read) or in per-slot files
// `2026-08-24.morning.md`.
package scandir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
	"github.com/meridian-labs/scanwatch-core/internal/scanparse"
)

// Verify interface compliance
var _ driven.ScanStore = (*Store)(nil)

var fileRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:\.(morning|midday|evening))?\.md$`)

// Store implements driven.ScanStore over a directory of markdown files
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("scan directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scan directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Upsert writes the raw markdown for a (date, slot) pair. Records without
// raw markdown cannot be represented as a file and are rejected.
func (s *Store) Upsert(ctx context.Context, record *domain.ScanRecord) (string, error) {
	if record == nil || strings.TrimSpace(record.RawMarkdown) == "" {
		return "", fmt.Errorf("%w: directory store requires raw markdown", domain.ErrInvalidInput)
	}
	if !domain.ValidDate(record.ScanDate) {
		return "", fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, record.ScanDate)
	}
	if !record.ScanTime.IsValid() {
		return "", fmt.Errorf("%w: invalid scan time %q", domain.ErrInvalidInput, record.ScanTime)
	}

	name := fmt.Sprintf("%s.%s.md", record.ScanDate, record.ScanTime)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(record.RawMarkdown), 0o644); err != nil {
		return "", fmt.Errorf("failed to write scan file: %w", err)
	}
	return name, nil
}

// ReadSlotDocuments loads every slot record for a date. Per-slot files win
// over the slots cut out of a whole-day file.
func (s *Store) ReadSlotDocuments(ctx context.Context, date string) ([]*domain.ScanRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan directory: %w", err)
	}

	bySlot := make(map[domain.ScanTime]*domain.ScanRecord)

	// Whole-day file first so slot files can override.
	for _, entry := range entries {
		m := fileRe.FindStringSubmatch(entry.Name())
		if m == nil || m[1] != date || m[2] != "" {
			continue
		}
		raw, info, err := s.readFile(entry.Name())
		if err != nil {
			return nil, err
		}
		for _, doc := range scanparse.SplitSlots(raw) {
			bySlot[doc.Time] = &domain.ScanRecord{
				ID:          entry.Name(),
				ScanDate:    date,
				ScanTime:    doc.Time,
				RawMarkdown: doc.Markdown,
				CreatedAt:   info.ModTime(),
			}
		}
	}

	for _, entry := range entries {
		m := fileRe.FindStringSubmatch(entry.Name())
		if m == nil || m[1] != date || m[2] == "" {
			continue
		}
		raw, info, err := s.readFile(entry.Name())
		if err != nil {
			return nil, err
		}
		slot := domain.ScanTime(m[2])
		bySlot[slot] = &domain.ScanRecord{
			ID:          entry.Name(),
			ScanDate:    date,
			ScanTime:    slot,
			RawMarkdown: raw,
			CreatedAt:   info.ModTime(),
		}
	}

	if len(bySlot) == 0 {
		return nil, domain.ErrNotFound
	}

	records := make([]*domain.ScanRecord, 0, len(bySlot))
	for _, slot := range domain.ScanTimes {
		if rec, ok := bySlot[slot]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ListAvailableDates returns every date with at least one file, ascending
func (s *Store) ListAvailableDates(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan directory: %w", err)
	}

	seen := make(map[string]bool)
	var dates []string
	for _, entry := range entries {
		m := fileRe.FindStringSubmatch(entry.Name())
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		dates = append(dates, m[1])
	}
	sort.Strings(dates)
	return dates, nil
}

// Ping checks that the directory is still readable
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close is a no-op for the directory store
func (s *Store) Close() error {
	return nil
}

func (s *Store) readFile(name string) (string, os.FileInfo, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to stat scan file: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read scan file: %w", err)
	}
	return string(raw), info, nil
}
