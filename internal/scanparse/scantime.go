package scanparse

import (
	"regexp"
	"strings"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

// DefaultScanTime is the slot assigned when neither headings nor keywords
// decide. The upstream producer publishes its consolidated report in the
// evening, so an unmarked document is treated as the end-of-day scan.
const DefaultScanTime = domain.ScanTimeEvening

// slotHeadings maps the known heading phrases to slots. Both the
// classifier and the slot splitter resolve headings through this table.
var slotHeadings = []struct {
	phrase string
	slot   domain.ScanTime
}{
	{"am scan", domain.ScanTimeMorning},
	{"am data", domain.ScanTimeMorning},
	{"morning scan", domain.ScanTimeMorning},
	{"morning data", domain.ScanTimeMorning},
	{"midday scan", domain.ScanTimeMidday},
	{"midday data", domain.ScanTimeMidday},
	{"noon scan", domain.ScanTimeMidday},
	{"pm scan", domain.ScanTimeEvening},
	{"pm data", domain.ScanTimeEvening},
	{"evening scan", domain.ScanTimeEvening},
	{"evening data", domain.ScanTimeEvening},
}

var (
	headingLineRe  = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+)$`)
	boldOnlyLineRe = regexp.MustCompile(`(?m)^[ \t]*\*\*([^*\n]+)\*\*[ \t]*$`)
	amWordRe       = regexp.MustCompile(`\bAM\b`)
	pmWordRe       = regexp.MustCompile(`\bPM\b`)
)

// ClassifyScanTime infers the time-of-day slot of a document. Precedence
// is fixed across all entry points: explicit slot headings first
// (case-insensitive exact match against the known phrases), then a loose
// keyword scan (a standalone "AM" without "PM" means morning and vice
// versa), then DefaultScanTime. The result is always a valid slot.
func ClassifyScanTime(markdown string) domain.ScanTime {
	for _, heading := range headingTexts(markdown) {
		if slot, ok := slotForHeading(heading); ok {
			return slot
		}
	}

	hasAM := amWordRe.MatchString(markdown)
	hasPM := pmWordRe.MatchString(markdown)
	if hasAM && !hasPM {
		return domain.ScanTimeMorning
	}
	if hasPM && !hasAM {
		return domain.ScanTimeEvening
	}

	return DefaultScanTime
}

// headingTexts collects heading text in document order, from both #-style
// headings and standalone bold lines.
func headingTexts(markdown string) []string {
	type hit struct {
		pos  int
		text string
	}
	var hits []hit
	for _, m := range headingLineRe.FindAllStringSubmatchIndex(markdown, -1) {
		hits = append(hits, hit{pos: m[0], text: markdown[m[2]:m[3]]})
	}
	for _, m := range boldOnlyLineRe.FindAllStringSubmatchIndex(markdown, -1) {
		hits = append(hits, hit{pos: m[0], text: markdown[m[2]:m[3]]})
	}

	// Document order regardless of heading style.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.text
	}
	return texts
}

// slotForHeading resolves one heading text against the known slot phrases.
func slotForHeading(heading string) (domain.ScanTime, bool) {
	normalized := strings.ToLower(strings.TrimSpace(heading))
	normalized = strings.TrimSuffix(normalized, ":")
	for _, sh := range slotHeadings {
		if normalized == sh.phrase {
			return sh.slot, true
		}
	}
	return "", false
}
