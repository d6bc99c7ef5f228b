// Package scanparse turns the upstream producer's semi-structured markdown
// scan reports into the normalized scan model. Every ingestion entry point
// (HTTP ingest, the background worker, the read services) goes through this
// package; there is exactly one implementation of each extraction rule.
package scanparse

import (
	"regexp"
	"strings"
)

// Boundary fragments shared by the section extractor and the slot splitter.
// Both build on the same set so their notion of a structural boundary
// cannot silently diverge.
const (
	headingBound = `\n#{1,6}[ \t]`
	ruleBound    = `\n[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*(?:\n|\z)`
	fenceBound   = "\\n[ \\t]*```"
	boldBound    = `\n[ \t]*\*\*[^*\n]+\*\*`
)

// sectionEnd terminates a bold-labeled span: the next bold-labeled line, a
// heading, a horizontal rule, a fenced code block, or end of document.
var sectionEnd = `(?:` + boldBound + `|` + headingBound + `|` + ruleBound + `|` + fenceBound + `|\z)`

// plainEnd additionally terminates on the next capitalized "Word:" line.
var plainEnd = `(?:\n[A-Z][A-Za-z ]*:|` + headingBound + `|` + ruleBound + `|` + fenceBound + `|\z)`

// ExtractSection pulls a single labeled field out of free-form markdown.
// The bold-labeled form (**Label:** text, colon optional) is tried first,
// then a plain "Label:" line. Matching is case-sensitive on the label;
// callers probe alternate capitalizations themselves. The captured span is
// trimmed but inner emphasis is preserved verbatim. The second return is
// false when neither form matches.
func ExtractSection(markdown, label string) (string, bool) {
	q := regexp.QuoteMeta(label)

	bold := regexp.MustCompile(`\*\*` + q + `:?\*\*:?[ \t]*([\s\S]*?)` + sectionEnd)
	if m := bold.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	plain := regexp.MustCompile(`(?:^|\n)` + q + `:[ \t]*([\s\S]*?)` + plainEnd)
	if m := plain.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	return "", false
}

// ExtractSectionAny probes labels in order and returns the first non-empty
// match. Used for fields authored under more than one capitalization
// ("Top theme" vs "Top Theme", "Pattern" vs "Patterns").
func ExtractSectionAny(markdown string, labels ...string) (string, bool) {
	for _, label := range labels {
		if text, ok := ExtractSection(markdown, label); ok {
			return text, true
		}
	}
	return "", false
}
