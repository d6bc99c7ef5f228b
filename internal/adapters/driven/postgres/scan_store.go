package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ScanStore = (*ScanStore)(nil)

// ScanStore implements driven.ScanStore using PostgreSQL
type ScanStore struct {
	db *DB
}

// NewScanStore creates a new ScanStore
func NewScanStore(db *DB) *ScanStore {
	return &ScanStore{db: db}
}

// Upsert creates or replaces the record for a (scan_date, scan_time) pair
func (s *ScanStore) Upsert(ctx context.Context, record *domain.ScanRecord) (string, error) {
	var patternJSON, framingJSON []byte
	var err error
	if record.PatternOfDay != nil {
		if patternJSON, err = json.Marshal(record.PatternOfDay); err != nil {
			return "", err
		}
	}
	if record.FramingWatch != nil {
		if framingJSON, err = json.Marshal(record.FramingWatch); err != nil {
			return "", err
		}
	}
	items := record.Items
	if items == nil {
		items = []domain.Item{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}

	// On conflict the existing row keeps its ID; RETURNING reports which
	// one survived.
	query := `
		INSERT INTO scans (id, scan_date, scan_time, human_summary, mood, top_theme,
			pattern_of_day, framing_watch, items, raw_markdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()))
		ON CONFLICT (scan_date, scan_time) DO UPDATE SET
			human_summary = EXCLUDED.human_summary,
			mood = EXCLUDED.mood,
			top_theme = EXCLUDED.top_theme,
			pattern_of_day = EXCLUDED.pattern_of_day,
			framing_watch = EXCLUDED.framing_watch,
			items = EXCLUDED.items,
			raw_markdown = EXCLUDED.raw_markdown,
			created_at = EXCLUDED.created_at
		RETURNING id
	`

	var createdAt sql.NullTime
	if !record.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: record.CreatedAt, Valid: true}
	}

	var storedID string
	err = s.db.QueryRowContext(ctx, query,
		id,
		record.ScanDate,
		string(record.ScanTime),
		nullString(record.HumanSummary),
		nullString(record.Mood),
		nullString(record.TopTheme),
		patternJSON,
		framingJSON,
		itemsJSON,
		nullString(record.RawMarkdown),
		createdAt,
	).Scan(&storedID)
	if err != nil {
		return "", err
	}
	return storedID, nil
}

// ReadSlotDocuments retrieves all slot records for a date in slot order
func (s *ScanStore) ReadSlotDocuments(ctx context.Context, date string) ([]*domain.ScanRecord, error) {
	query := `
		SELECT id, scan_date::text, scan_time, human_summary, mood, top_theme,
			pattern_of_day, framing_watch, items, raw_markdown, created_at
		FROM scans
		WHERE scan_date = $1
		ORDER BY array_position(ARRAY['morning','midday','evening'], scan_time), created_at
	`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ScanRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return records, nil
}

// ListAvailableDates returns every date with at least one record, ascending
func (s *ScanStore) ListAvailableDates(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT scan_date::text FROM scans ORDER BY 1`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Ping checks if the store is reachable
func (s *ScanStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the underlying connection pool
func (s *ScanStore) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (*domain.ScanRecord, error) {
	var record domain.ScanRecord
	var humanSummary, mood, topTheme, rawMarkdown sql.NullString
	var patternJSON, framingJSON, itemsJSON []byte

	err := rows.Scan(
		&record.ID,
		&record.ScanDate,
		&record.ScanTime,
		&humanSummary,
		&mood,
		&topTheme,
		&patternJSON,
		&framingJSON,
		&itemsJSON,
		&rawMarkdown,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.HumanSummary = humanSummary.String
	record.Mood = mood.String
	record.TopTheme = topTheme.String
	record.RawMarkdown = rawMarkdown.String

	if len(patternJSON) > 0 {
		record.PatternOfDay = &domain.PatternOfDay{}
		if err := json.Unmarshal(patternJSON, record.PatternOfDay); err != nil {
			return nil, err
		}
	}
	if len(framingJSON) > 0 {
		record.FramingWatch = &domain.FramingWatch{}
		if err := json.Unmarshal(framingJSON, record.FramingWatch); err != nil {
			return nil, err
		}
	}
	record.Items = []domain.Item{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &record.Items); err != nil {
			return nil, err
		}
	}
	return &record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
