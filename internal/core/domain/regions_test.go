package domain

import (
	"reflect"
	"testing"
)

func TestEnrichItems_Partition(t *testing.T) {
	items := []Item{
		{Headline: "Water dispute escalates", Category: "geopolitics", Regions: []string{"west", "africa"}},
	}

	enriched := EnrichItems(items, RegionUniverse)
	if len(enriched) != 1 {
		t.Fatalf("expected 1 item, got %d", len(enriched))
	}

	bs := enriched[0].Blindspot
	if bs == nil {
		t.Fatal("expected blindspot info to be populated")
	}
	if !reflect.DeepEqual(bs.CoveredBy, []string{"west", "africa"}) {
		t.Errorf("unexpected covered_by: %v", bs.CoveredBy)
	}
	want := []string{"russia", "china", "india", "middle_east", "latin_america"}
	if !reflect.DeepEqual(bs.MissingFrom, want) {
		t.Errorf("unexpected missing_from: %v", bs.MissingFrom)
	}
	if !enriched[0].HasBlindspot() {
		t.Error("expected item to have a blindspot")
	}

	// Disjoint union must equal the universe.
	if len(bs.CoveredBy)+len(bs.MissingFrom) != len(RegionUniverse) {
		t.Errorf("partition does not cover universe: %d + %d != %d",
			len(bs.CoveredBy), len(bs.MissingFrom), len(RegionUniverse))
	}
	covered := make(map[string]bool)
	for _, r := range bs.CoveredBy {
		covered[r] = true
	}
	for _, r := range bs.MissingFrom {
		if covered[r] {
			t.Errorf("region %s appears in both covered_by and missing_from", r)
		}
	}
}

func TestEnrichItems_GlobalSentinel(t *testing.T) {
	items := []Item{
		{Headline: "Summit concludes", Category: "geopolitics", Regions: []string{"global", "west"}},
	}

	enriched := EnrichItems(items, RegionUniverse)
	bs := enriched[0].Blindspot

	for _, r := range bs.CoveredBy {
		if r == RegionGlobal {
			t.Error("global sentinel must not appear in covered_by")
		}
	}
	for _, r := range bs.MissingFrom {
		if r == RegionGlobal {
			t.Error("global sentinel must not appear in missing_from")
		}
	}
	if !reflect.DeepEqual(bs.CoveredBy, []string{"west"}) {
		t.Errorf("unexpected covered_by: %v", bs.CoveredBy)
	}
}

func TestEnrichItems_Idempotent(t *testing.T) {
	items := []Item{
		{Headline: "A", Category: "economy", Regions: []string{"china", "india"}},
		{Headline: "B", Category: "conflict", Regions: nil},
		{Headline: "C", Category: "culture", Regions: []string{"west", "russia", "china", "india", "middle_east", "africa", "latin_america"}},
	}

	once := EnrichItems(items, RegionUniverse)
	twice := EnrichItems(once, RegionUniverse)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("enrichment is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}

	// Source regions must be untouched.
	if len(items[0].Regions) != 2 {
		t.Errorf("enrichment modified input regions: %v", items[0].Regions)
	}
}

func TestEnrichItems_FullCoverage(t *testing.T) {
	items := []Item{
		{Headline: "Everywhere", Category: "world", Regions: append([]string{}, RegionUniverse...)},
	}

	enriched := EnrichItems(items, RegionUniverse)
	if enriched[0].HasBlindspot() {
		t.Error("fully covered item must not have a blindspot")
	}
	if len(enriched[0].Blindspot.MissingFrom) != 0 {
		t.Errorf("expected empty missing_from, got %v", enriched[0].Blindspot.MissingFrom)
	}
}

func TestEnrichItems_UnknownRegionPassthrough(t *testing.T) {
	items := []Item{
		{Headline: "New upstream region", Category: "world", Regions: []string{"oceania", "west"}},
	}

	enriched := EnrichItems(items, RegionUniverse)
	bs := enriched[0].Blindspot

	// Unknown regions neither cover nor go missing; they are simply not in
	// the universe.
	if !reflect.DeepEqual(bs.CoveredBy, []string{"west"}) {
		t.Errorf("unexpected covered_by: %v", bs.CoveredBy)
	}
	if len(bs.MissingFrom) != len(RegionUniverse)-1 {
		t.Errorf("unexpected missing_from length: %d", len(bs.MissingFrom))
	}
	if !reflect.DeepEqual(items[0].Regions, []string{"oceania", "west"}) {
		t.Errorf("input regions modified: %v", items[0].Regions)
	}
}
