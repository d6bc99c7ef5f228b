package scanparse

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

var jsonBlockRe = regexp.MustCompile("(?s)```json[ \\t]*\\n(.*?)```")

// rawItem is the wire shape of one authored item inside a ```json block.
type rawItem struct {
	Headline     string   `json:"headline"`
	Category     string   `json:"category"`
	Regions      []string `json:"regions"`
	Tags         []string `json:"tags"`
	Patterns     []string `json:"patterns"`
	Significance string   `json:"significance"`
	Connection   string   `json:"connection"`
}

// ExtractItems collects every item from the document's json-tagged fenced
// blocks. Each block is parsed independently; a block that is not a JSON
// array is skipped with a warning and sibling blocks are still processed.
// An element is accepted only with a non-empty headline and category; all
// other fields are defaulted. Encounter order is preserved across blocks.
// Never fails on malformed input - it degrades to fewer items.
func ExtractItems(markdown string, logger *slog.Logger) []domain.Item {
	if logger == nil {
		logger = slog.Default()
	}

	items := make([]domain.Item, 0)
	for blockIdx, block := range jsonBlockRe.FindAllStringSubmatch(markdown, -1) {
		var elements []json.RawMessage
		if err := json.Unmarshal([]byte(block[1]), &elements); err != nil {
			logger.Warn("skipping item block that is not a JSON array",
				"block", blockIdx, "error", err)
			continue
		}

		for elemIdx, element := range elements {
			var raw rawItem
			if err := json.Unmarshal(element, &raw); err != nil {
				logger.Warn("skipping malformed item",
					"block", blockIdx, "index", elemIdx, "error", err)
				continue
			}

			headline := strings.TrimSpace(raw.Headline)
			category := strings.TrimSpace(raw.Category)
			if headline == "" || category == "" {
				continue
			}

			items = append(items, domain.Item{
				Headline:     headline,
				Category:     category,
				Regions:      collapseSet(raw.Regions),
				Tags:         emptySlice(raw.Tags),
				Patterns:     collapseSet(raw.Patterns),
				Significance: domain.ParseSignificance(raw.Significance),
				Connection:   strings.TrimSpace(raw.Connection),
			})
		}
	}
	return items
}

// collapseSet drops duplicate entries while keeping first-seen order.
func collapseSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func emptySlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
