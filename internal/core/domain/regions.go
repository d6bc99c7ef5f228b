package domain

// RegionUniverse is the product's seven tracked regions, in display order.
// Blindspot derivation partitions this set for every item.
var RegionUniverse = []string{
	"west",
	"russia",
	"china",
	"india",
	"middle_east",
	"africa",
	"latin_america",
}

// RegionGlobal is the sentinel region for stories observed everywhere.
// It never counts as covering a specific region and is never listed as
// missing.
const RegionGlobal = "global"

// EnrichItems recomputes BlindspotInfo for every item against the given
// region universe. CoveredBy is the intersection of the item's regions with
// the universe, MissingFrom its complement, both in universe order. The
// derivation is pure and idempotent: item regions are never modified, and
// re-running produces the same result.
func EnrichItems(items []Item, universe []string) []Item {
	if universe == nil {
		universe = RegionUniverse
	}

	enriched := make([]Item, len(items))
	for i, item := range items {
		observed := make(map[string]bool, len(item.Regions))
		for _, r := range item.Regions {
			if r != RegionGlobal {
				observed[r] = true
			}
		}

		info := &BlindspotInfo{
			CoveredBy:   make([]string, 0, len(universe)),
			MissingFrom: make([]string, 0, len(universe)),
		}
		for _, region := range universe {
			if observed[region] {
				info.CoveredBy = append(info.CoveredBy, region)
			} else {
				info.MissingFrom = append(info.MissingFrom, region)
			}
		}

		item.Blindspot = info
		enriched[i] = item
	}
	return enriched
}
