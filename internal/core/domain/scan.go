package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ScanTime identifies which time-of-day slot a scan document covers.
type ScanTime string

const (
	ScanTimeMorning ScanTime = "morning"
	ScanTimeMidday  ScanTime = "midday"
	ScanTimeEvening ScanTime = "evening"
)

// ScanTimes lists all valid slots in chronological order.
var ScanTimes = []ScanTime{ScanTimeMorning, ScanTimeMidday, ScanTimeEvening}

// IsValid reports whether the slot is one of the enumerated scan times.
func (t ScanTime) IsValid() bool {
	switch t {
	case ScanTimeMorning, ScanTimeMidday, ScanTimeEvening:
		return true
	}
	return false
}

// Order returns the chronological position of the slot within a day.
// Unknown slots sort last.
func (t ScanTime) Order() int {
	switch t {
	case ScanTimeMorning:
		return 0
	case ScanTimeMidday:
		return 1
	case ScanTimeEvening:
		return 2
	}
	return 3
}

// Significance grades how important a reported story is.
type Significance string

const (
	SignificanceHigh   Significance = "high"
	SignificanceMedium Significance = "medium"
	SignificanceLow    Significance = "low"
)

// ParseSignificance normalizes a raw significance value.
// Absent or unrecognized values default to medium.
func ParseSignificance(raw string) Significance {
	switch Significance(strings.ToLower(strings.TrimSpace(raw))) {
	case SignificanceHigh:
		return SignificanceHigh
	case SignificanceLow:
		return SignificanceLow
	default:
		return SignificanceMedium
	}
}

// Pattern tags recognized on items. Framing and omission are adjacent but
// distinct signals and must not be conflated.
const (
	PatternFraming  = "framing"
	PatternOmission = "omission"
)

// Item is one reported story within a scan.
type Item struct {
	Headline     string         `json:"headline"`
	Category     string         `json:"category"`
	Regions      []string       `json:"regions"`
	Tags         []string       `json:"tags"`
	Patterns     []string       `json:"patterns"`
	Significance Significance   `json:"significance"`
	Connection   string         `json:"connection"`
	Blindspot    *BlindspotInfo `json:"blindspot,omitempty"`
}

// HasFramingWatch reports whether the item is flagged as reported
// divergently across regions.
func (i *Item) HasFramingWatch() bool {
	return i.hasPattern(PatternFraming)
}

// HasOmissionWatch reports whether the item carries the omission signal.
func (i *Item) HasOmissionWatch() bool {
	return i.hasPattern(PatternOmission)
}

// HasBlindspot reports whether at least one known region has no coverage
// of the item. Only meaningful after enrichment.
func (i *Item) HasBlindspot() bool {
	return i.Blindspot != nil && len(i.Blindspot.MissingFrom) > 0
}

func (i *Item) hasPattern(tag string) bool {
	for _, p := range i.Patterns {
		if p == tag {
			return true
		}
	}
	return false
}

// BlindspotInfo records which known regions covered an item and which did
// not. Derived by enrichment, never authored upstream.
type BlindspotInfo struct {
	CoveredBy   []string `json:"covered_by"`
	MissingFrom []string `json:"missing_from"`
}

// PatternOfDay is the decoded (title, body) pair of the free-text pattern
// field.
type PatternOfDay struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UnmarshalJSON accepts both the "body" and the legacy "description" key
// for the body field, matching the persisted jsonb shape.
func (p *PatternOfDay) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       string `json:"title"`
		Body        string `json:"body"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Title = raw.Title
	p.Body = raw.Body
	if p.Body == "" {
		p.Body = raw.Description
	}
	return nil
}

// FramingWatch is the persisted framing note wrapper.
type FramingWatch struct {
	Note string `json:"note"`
}

// ParsedScan is one time-slot's (or one day's merged) scan document.
type ParsedScan struct {
	Date           string        `json:"date"`
	DisplayDate    string        `json:"display_date"`
	TopTheme       string        `json:"top_theme,omitempty"`
	Mood           string        `json:"mood,omitempty"`
	WeatherSummary string        `json:"weather_summary,omitempty"`
	FlowsSummary   string        `json:"flows_summary,omitempty"`
	FramingNote    string        `json:"framing_note,omitempty"`
	PatternOfDay   *PatternOfDay `json:"pattern_of_day,omitempty"`
	NotableItems   []string      `json:"notable_items"`
	Items          []Item        `json:"items"`
	ScanMeta       string        `json:"scan_meta,omitempty"`
}

// ScanRecord mirrors one persisted scan row, keyed by (scan_date, scan_time).
type ScanRecord struct {
	ID           string        `json:"id,omitempty"`
	ScanDate     string        `json:"scan_date"`
	ScanTime     ScanTime      `json:"scan_time"`
	HumanSummary string        `json:"human_summary,omitempty"`
	Mood         string        `json:"mood,omitempty"`
	TopTheme     string        `json:"top_theme,omitempty"`
	PatternOfDay *PatternOfDay `json:"pattern_of_day,omitempty"`
	FramingWatch *FramingWatch `json:"framing_watch,omitempty"`
	Items        []Item        `json:"items"`
	RawMarkdown  string        `json:"raw_markdown,omitempty"`
	CreatedAt    time.Time     `json:"created_at,omitempty"`
}

const dateLayout = "2006-01-02"

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// FormatDisplayDate renders an ISO date for display, e.g.
// "Monday, January 2, 2006". Invalid dates render as-is.
func FormatDisplayDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// DateRange enumerates the ISO dates from from to to inclusive.
// Returns nil when the bounds are invalid or reversed.
func DateRange(from, to string) []string {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil || end.Before(start) {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
