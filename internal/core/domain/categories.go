package domain

// CanonicalCategories is the fixed display taxonomy, in product order.
// Categories arriving from upstream that are not listed here are still
// accepted and displayed after the canonical set.
var CanonicalCategories = []string{
	"geopolitics",
	"conflict",
	"economy",
	"technology",
	"energy",
	"climate",
	"health",
	"society",
	"science",
	"culture",
}

// CategoryRank returns the taxonomy position of a category, or the length
// of the taxonomy when the category is unknown.
func CategoryRank(category string) int {
	for i, c := range CanonicalCategories {
		if c == category {
			return i
		}
	}
	return len(CanonicalCategories)
}

// CategoryGroup pairs a category with the items filed under it.
type CategoryGroup struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// GroupByCategory partitions items by category. Canonical categories come
// first in taxonomy order, unknown categories follow in first-seen order.
// Item order within each group preserves the input sequence; this is a
// stable partition, not a sort.
func GroupByCategory(items []Item) []CategoryGroup {
	buckets := make(map[string][]Item)
	var unknown []string
	for _, item := range items {
		if _, seen := buckets[item.Category]; !seen && CategoryRank(item.Category) == len(CanonicalCategories) {
			unknown = append(unknown, item.Category)
		}
		buckets[item.Category] = append(buckets[item.Category], item)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, category := range CanonicalCategories {
		if items, ok := buckets[category]; ok {
			groups = append(groups, CategoryGroup{Category: category, Items: items})
		}
	}
	for _, category := range unknown {
		groups = append(groups, CategoryGroup{Category: category, Items: buckets[category]})
	}
	return groups
}
