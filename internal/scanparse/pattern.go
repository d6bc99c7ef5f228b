package scanparse

import (
	"regexp"
	"strings"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

var (
	italicTitleRe = regexp.MustCompile(`(?s)^\*([^*\n]+)\*[ \t]*:?\s*(.*)$`)
	boldTitleRe   = regexp.MustCompile(`(?s)^\*\*([^*\n]+)\*\*[ \t]*:?\s*(.*)$`)
)

// DecodePattern splits the free-text pattern-of-day field into a (title,
// body) pair. Authoring styles are tried in order: a leading italic span
// as title, a leading bold span as title, then a first-sentence split; if
// none applies the whole text becomes the body with an empty title.
// Returns nil for empty input. Pure - identical input, identical output.
func DecodePattern(raw string) *domain.PatternOfDay {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	if m := italicTitleRe.FindStringSubmatch(text); m != nil {
		return &domain.PatternOfDay{
			Title: strings.TrimSpace(m[1]),
			Body:  strings.TrimSpace(m[2]),
		}
	}

	if m := boldTitleRe.FindStringSubmatch(text); m != nil {
		return &domain.PatternOfDay{
			Title: strings.TrimSpace(m[1]),
			Body:  strings.TrimSpace(m[2]),
		}
	}

	if idx := firstSentenceEnd(text); idx > 0 && idx < len(text)-1 {
		return &domain.PatternOfDay{
			Title: strings.TrimSpace(text[:idx+1]),
			Body:  strings.TrimSpace(text[idx+1:]),
		}
	}

	return &domain.PatternOfDay{Title: "", Body: text}
}

// firstSentenceEnd returns the index of the period closing the first
// sentence, or -1 when the text has no sentence boundary before its end.
func firstSentenceEnd(text string) int {
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && (text[i+1] == ' ' || text[i+1] == '\n') {
			return i
		}
	}
	return -1
}
