package scanparse

import (
	"testing"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

func TestClassifyScanTime_HeadingMarkers(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want domain.ScanTime
	}{
		{"am scan heading", "## AM Scan\ncontent", domain.ScanTimeMorning},
		{"am data heading", "# AM Data\ncontent", domain.ScanTimeMorning},
		{"pm data heading", "### PM Data\ncontent", domain.ScanTimeEvening},
		{"evening scan heading", "## Evening Scan\ncontent", domain.ScanTimeEvening},
		{"midday heading", "## Midday Scan\ncontent", domain.ScanTimeMidday},
		{"bold line heading", "**AM Data**\ncontent", domain.ScanTimeMorning},
		{"case insensitive", "## am scan\ncontent", domain.ScanTimeMorning},
		{"trailing colon", "## AM Scan:\ncontent", domain.ScanTimeMorning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyScanTime(tt.md); got != tt.want {
				t.Errorf("ClassifyScanTime = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyScanTime_HeadingBeatsKeywords(t *testing.T) {
	// The document mentions PM in prose but the heading says morning.
	md := "## AM Scan\nThe PM briefing is expected later."
	if got := ClassifyScanTime(md); got != domain.ScanTimeMorning {
		t.Errorf("heading marker must take precedence, got %s", got)
	}
}

func TestClassifyScanTime_KeywordFallback(t *testing.T) {
	if got := ClassifyScanTime("Collected during the AM sweep."); got != domain.ScanTimeMorning {
		t.Errorf("expected morning from AM keyword, got %s", got)
	}
	if got := ClassifyScanTime("Collected during the PM sweep."); got != domain.ScanTimeEvening {
		t.Errorf("expected evening from PM keyword, got %s", got)
	}
	// AM embedded in a word does not count.
	if got := ClassifyScanTime("PROGRAMMING notes only."); got != DefaultScanTime {
		t.Errorf("expected default for embedded letters, got %s", got)
	}
}

func TestClassifyScanTime_AmbiguousDefaults(t *testing.T) {
	// Both keywords present and no heading marker: deterministic default.
	md := "Covers both the AM sweep and the PM sweep."
	if got := ClassifyScanTime(md); got != DefaultScanTime {
		t.Errorf("expected default slot, got %s", got)
	}
	// Nothing at all.
	if got := ClassifyScanTime("plain notes"); got != DefaultScanTime {
		t.Errorf("expected default slot, got %s", got)
	}
}

func TestClassifyScanTime_Total(t *testing.T) {
	inputs := []string{"", "###", "```json\n[]\n```", "** **"}
	for _, md := range inputs {
		if got := ClassifyScanTime(md); !got.IsValid() {
			t.Errorf("ClassifyScanTime(%q) returned invalid slot %q", md, got)
		}
	}
}
