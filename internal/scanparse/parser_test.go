package scanparse

import (
	"reflect"
	"strings"
	"testing"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

func TestParse_EndToEnd(t *testing.T) {
	md := "**Mood:** Calm.\n\n" +
		"```json\n[{\"headline\":\"X\",\"category\":\"world\"}]\n```\n"

	scan := Parse(md, "2026-08-24", nil)

	if scan.Mood != "Calm." {
		t.Errorf("unexpected mood: %q", scan.Mood)
	}
	if len(scan.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(scan.Items))
	}
	if scan.Items[0].Significance != domain.SignificanceMedium {
		t.Errorf("expected default significance, got %s", scan.Items[0].Significance)
	}
	if len(scan.Items[0].Regions) != 0 {
		t.Errorf("expected empty regions, got %v", scan.Items[0].Regions)
	}
	if scan.Date != "2026-08-24" || scan.DisplayDate != "Monday, August 24, 2026" {
		t.Errorf("unexpected dates: %s / %s", scan.Date, scan.DisplayDate)
	}
}

func TestParse_AllSections(t *testing.T) {
	md := "# Daily Scan\n\n" +
		"**Top theme:** Realignment.\n" +
		"**Mood:** Watchful.\n" +
		"**Weather:** Scattered storms.\n" +
		"**Flows:** Capital moving east.\n" +
		"**Framing:** Same summit, two stories.\n" +
		"**Pattern:** *Convergence* Regions circling one story.\n" +
		"**Notable headlines:**\n" +
		"- First notable\n" +
		"- Second notable\n\n" +
		"```json\n[{\"headline\":\"A\",\"category\":\"geopolitics\",\"regions\":[\"west\"]}]\n```\n\n" +
		"_Scan complete: 2026-08-24T18:02Z_\n"

	scan := Parse(md, "2026-08-24", nil)

	if scan.TopTheme != "Realignment." {
		t.Errorf("top theme: %q", scan.TopTheme)
	}
	if scan.Mood != "Watchful." {
		t.Errorf("mood: %q", scan.Mood)
	}
	if scan.WeatherSummary != "Scattered storms." {
		t.Errorf("weather: %q", scan.WeatherSummary)
	}
	if scan.FlowsSummary != "Capital moving east." {
		t.Errorf("flows: %q", scan.FlowsSummary)
	}
	if scan.FramingNote != "Same summit, two stories." {
		t.Errorf("framing: %q", scan.FramingNote)
	}
	if scan.PatternOfDay == nil || scan.PatternOfDay.Title != "Convergence" {
		t.Errorf("pattern of day: %+v", scan.PatternOfDay)
	}
	if !reflect.DeepEqual(scan.NotableItems, []string{"First notable", "Second notable"}) {
		t.Errorf("notable items: %v", scan.NotableItems)
	}
	if len(scan.Items) != 1 || scan.Items[0].Headline != "A" {
		t.Errorf("items: %+v", scan.Items)
	}
	if scan.ScanMeta != "2026-08-24T18:02Z" {
		t.Errorf("scan meta: %q", scan.ScanMeta)
	}
}

func TestParse_MissingSectionsAreEmpty(t *testing.T) {
	scan := Parse("just prose", "2026-08-24", nil)

	if scan.Mood != "" || scan.TopTheme != "" || scan.FramingNote != "" {
		t.Errorf("expected empty scalar fields: %+v", scan)
	}
	if scan.PatternOfDay != nil {
		t.Errorf("expected nil pattern of day, got %+v", scan.PatternOfDay)
	}
	if len(scan.NotableItems) != 0 || scan.NotableItems == nil {
		t.Errorf("expected empty non-nil notable items, got %v", scan.NotableItems)
	}
	if len(scan.Items) != 0 {
		t.Errorf("expected no items, got %v", scan.Items)
	}
}

func TestSplitSlots_TwoSubDocuments(t *testing.T) {
	md := "Preamble for the day.\n\n" +
		"## AM Data\n**Mood:** Fresh.\n\n" +
		"## PM Data\n**Mood:** Tired.\n"

	docs := SplitSlots(md)
	if len(docs) != 2 {
		t.Fatalf("expected 2 slot documents, got %d", len(docs))
	}

	if docs[0].Time != domain.ScanTimeMorning {
		t.Errorf("first slot: expected morning, got %s", docs[0].Time)
	}
	if docs[1].Time != domain.ScanTimeEvening {
		t.Errorf("second slot: expected evening, got %s", docs[1].Time)
	}

	// Preamble belongs to the first sub-document.
	if !strings.Contains(docs[0].Markdown, "Preamble for the day.") {
		t.Errorf("preamble missing from first slot: %q", docs[0].Markdown)
	}
	if strings.Contains(docs[1].Markdown, "Fresh.") {
		t.Error("first slot content leaked into second slot")
	}

	// Each sub-range parses independently with the same rules.
	am := Parse(docs[0].Markdown, "2026-08-24", nil)
	pm := Parse(docs[1].Markdown, "2026-08-24", nil)
	if am.Mood != "Fresh." || pm.Mood != "Tired." {
		t.Errorf("per-slot parse wrong: am=%q pm=%q", am.Mood, pm.Mood)
	}
}

func TestSplitSlots_NoHeadings(t *testing.T) {
	md := "**Mood:** Calm.\n"
	docs := SplitSlots(md)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Time != DefaultScanTime {
		t.Errorf("expected default slot, got %s", docs[0].Time)
	}
	if docs[0].Markdown != md {
		t.Error("whole document must be preserved")
	}
}

func TestSplitSlots_BoldHeadings(t *testing.T) {
	md := "**AM Scan**\ncontent a\n**PM Scan**\ncontent b\n"
	docs := SplitSlots(md)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Time != domain.ScanTimeMorning || docs[1].Time != domain.ScanTimeEvening {
		t.Errorf("unexpected slots: %s, %s", docs[0].Time, docs[1].Time)
	}
}
