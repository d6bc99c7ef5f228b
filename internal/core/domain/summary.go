package domain

// FramingComparison projects one item with its scan date for cross-day
// framing review. Derived, never persisted independently.
type FramingComparison struct {
	Item        Item   `json:"item"`
	ScanDate    string `json:"scan_date"`
	DisplayDate string `json:"display_date"`
}

// ScanSummary is a per-day rollup derived entirely from ParsedScan.Items.
type ScanSummary struct {
	Date         string   `json:"date"`
	DisplayDate  string   `json:"display_date"`
	ItemCount    int      `json:"item_count"`
	HighCount    int      `json:"high_count"`
	FramingCount int      `json:"framing_count"`
	Categories   []string `json:"categories"`
	TopTheme     string   `json:"top_theme,omitempty"`
	Mood         string   `json:"mood,omitempty"`
}

// NewScanSummary derives the per-day rollup from a parsed scan.
// Categories are reported in first-seen order.
func NewScanSummary(scan *ParsedScan) *ScanSummary {
	summary := &ScanSummary{
		Date:        scan.Date,
		DisplayDate: scan.DisplayDate,
		ItemCount:   len(scan.Items),
		TopTheme:    scan.TopTheme,
		Mood:        scan.Mood,
	}

	seen := make(map[string]bool)
	for i := range scan.Items {
		item := &scan.Items[i]
		if item.Significance == SignificanceHigh {
			summary.HighCount++
		}
		if item.HasFramingWatch() {
			summary.FramingCount++
		}
		if !seen[item.Category] {
			seen[item.Category] = true
			summary.Categories = append(summary.Categories, item.Category)
		}
	}
	return summary
}

// CategoryCount is a per-category frequency entry in the weekly rollup.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// RegionCount is a per-region blindspot frequency entry in the weekly
// rollup.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// WeeklySummary aggregates a range of daily scans.
type WeeklySummary struct {
	From             string             `json:"from"`
	To               string             `json:"to"`
	ScanDays         int                `json:"scan_days"`
	TotalItems       int                `json:"total_items"`
	BlindspotItems   int                `json:"blindspot_items"`
	StoryOfWeek      *FramingComparison `json:"story_of_week,omitempty"`
	TopCategories    []CategoryCount    `json:"top_categories"`
	CommonBlindspots []RegionCount      `json:"common_blindspots"`
}
