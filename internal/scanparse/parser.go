package scanparse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

var (
	bulletLineRe = regexp.MustCompile(`(?m)^[ \t]*[-*\x{2022}][ \t]+(.+)$`)
	scanMetaRe   = regexp.MustCompile(`(?m)^_Scan complete:[ \t]*(.+?)_[ \t]*$`)
)

// Parse assembles one time-slot document from raw markdown. Missing
// sections become empty values, never errors. Items come back in authored
// order and are not yet enriched with blindspot info; that is the read
// path's job.
func Parse(markdown, date string, logger *slog.Logger) *domain.ParsedScan {
	scan := &domain.ParsedScan{
		Date:         date,
		DisplayDate:  domain.FormatDisplayDate(date),
		NotableItems: []string{},
		Items:        ExtractItems(markdown, logger),
	}

	scan.Mood, _ = ExtractSection(markdown, "Mood")
	scan.TopTheme, _ = ExtractSectionAny(markdown, "Top theme", "Top Theme")
	scan.WeatherSummary, _ = ExtractSection(markdown, "Weather")
	scan.FlowsSummary, _ = ExtractSection(markdown, "Flows")
	scan.FramingNote, _ = ExtractSection(markdown, "Framing")

	if raw, ok := ExtractSectionAny(markdown, "Pattern", "Patterns"); ok {
		scan.PatternOfDay = DecodePattern(raw)
	}

	if notable, ok := ExtractSectionAny(markdown, "Notable headlines", "Notable"); ok {
		scan.NotableItems = bulletLines(notable)
	}

	if m := scanMetaRe.FindStringSubmatch(markdown); m != nil {
		scan.ScanMeta = strings.TrimSpace(m[1])
	}

	return scan
}

// SlotDocument is one time-slot sub-range of a scan file.
type SlotDocument struct {
	Time     domain.ScanTime
	Markdown string
}

// SplitSlots cuts a file containing slot sub-sections (e.g. "AM Data" /
// "PM Data" headings) into per-slot sub-documents, each parsed
// independently by the same rules. Preamble before the first slot heading
// belongs to the first sub-document. A file without slot headings is one
// sub-document classified as a whole.
func SplitSlots(markdown string) []SlotDocument {
	type cut struct {
		pos  int
		slot domain.ScanTime
	}
	var cuts []cut
	for _, re := range []*regexp.Regexp{headingLineRe, boldOnlyLineRe} {
		for _, m := range re.FindAllStringSubmatchIndex(markdown, -1) {
			if slot, ok := slotForHeading(markdown[m[2]:m[3]]); ok {
				cuts = append(cuts, cut{pos: m[0], slot: slot})
			}
		}
	}

	if len(cuts) == 0 {
		return []SlotDocument{{Time: ClassifyScanTime(markdown), Markdown: markdown}}
	}

	for i := 1; i < len(cuts); i++ {
		for j := i; j > 0 && cuts[j].pos < cuts[j-1].pos; j-- {
			cuts[j], cuts[j-1] = cuts[j-1], cuts[j]
		}
	}

	docs := make([]SlotDocument, 0, len(cuts))
	for i, c := range cuts {
		start := c.pos
		if i == 0 {
			start = 0 // preamble joins the first slot
		}
		end := len(markdown)
		if i+1 < len(cuts) {
			end = cuts[i+1].pos
		}
		docs = append(docs, SlotDocument{Time: c.slot, Markdown: markdown[start:end]})
	}
	return docs
}

// bulletLines extracts the text of each markdown bullet in a section.
// Non-bullet lines are ignored.
func bulletLines(section string) []string {
	lines := []string{}
	for _, m := range bulletLineRe.FindAllStringSubmatch(section, -1) {
		if text := strings.TrimSpace(m[1]); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}
