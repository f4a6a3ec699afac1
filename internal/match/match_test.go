package match

import (
	"testing"

	"github.com/hurttlocker/chartbot/internal/agg"
)

func testCatalog() []agg.SongAggregate {
	return []agg.SongAggregate{
		{Song: "Shape of You", Artist: "Ed Sheeran", BestRank: 1, PeakRank: 1, WeeksOnChart: 77, FirstYear: 2017},
		{Song: "Shape of My Heart", Artist: "Backstreet Boys", BestRank: 9, PeakRank: 9, WeeksOnChart: 20, FirstYear: 2000},
		{Song: "Shapes", Artist: "Some Band", BestRank: 80, PeakRank: 78, WeeksOnChart: 2, FirstYear: 2011},
		{Song: "Hotline Bling", Artist: "Drake", BestRank: 2, PeakRank: 2, WeeksOnChart: 35, FirstYear: 2015},
		{Song: "God's Plan", Artist: "Drake", BestRank: 1, PeakRank: 1, WeeksOnChart: 36, FirstYear: 2018},
	}
}

func TestFind_TierPriority(t *testing.T) {
	e := NewEngine(testCatalog())

	got := e.Find("Shape of You", Options{MaxResults: 5})
	if len(got) == 0 {
		t.Fatal("expected matches")
	}
	if got[0].Tier != TierExact || got[0].Score != 100 || got[0].Song != "Shape of You" {
		t.Fatalf("first match = %+v, want exact Shape of You", got[0])
	}

	// Tiers never interleave: exact before contains before fuzzy.
	rank := map[Tier]int{TierExact: 0, TierContains: 1, TierFuzzy: 2}
	for i := 1; i < len(got); i++ {
		if rank[got[i].Tier] < rank[got[i-1].Tier] {
			t.Fatalf("tier order violated: %+v", got)
		}
	}
}

func TestFind_ContainsTier(t *testing.T) {
	e := NewEngine(testCatalog())

	got := e.Find("shape", Options{MaxResults: 5})
	if len(got) < 3 {
		t.Fatalf("expected at least 3 shape matches, got %+v", got)
	}
	for _, m := range got[:3] {
		if m.Tier != TierContains || m.Score != 85 {
			t.Fatalf("expected contains tier with score 85, got %+v", m)
		}
	}
}

func TestFind_FuzzyTier(t *testing.T) {
	e := NewEngine(testCatalog())

	// Typo: no exact or substring hit, fuzzy should still find it.
	got := e.Find("hotlin blng", Options{MaxResults: 3})
	if len(got) == 0 {
		t.Fatal("expected a fuzzy match for the typo query")
	}
	if got[0].Song != "Hotline Bling" || got[0].Tier != TierFuzzy {
		t.Fatalf("first match = %+v, want fuzzy Hotline Bling", got[0])
	}
	if got[0].Score < DefaultFuzzyThreshold || got[0].Score >= 100 {
		t.Fatalf("fuzzy score %d out of expected range", got[0].Score)
	}
}

func TestFind_ArtistFilter(t *testing.T) {
	e := NewEngine(testCatalog())

	got := e.Find("shape", Options{Artist: "backstreet", MaxResults: 5})
	if len(got) != 1 || got[0].Song != "Shape of My Heart" {
		t.Fatalf("artist-filtered matches = %+v", got)
	}
}

func TestFind_MaxResults(t *testing.T) {
	e := NewEngine(testCatalog())

	got := e.Find("shape", Options{MaxResults: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
}

func TestFind_EmptyQuery(t *testing.T) {
	e := NewEngine(testCatalog())
	if got := e.Find("   ", Options{}); got != nil {
		t.Fatalf("expected nil for blank query, got %+v", got)
	}
}

func TestFind_NoMatches(t *testing.T) {
	e := NewEngine(testCatalog())
	if got := e.Find("zzzzqqqq", Options{MaxResults: 5}); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestPartialRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"shape of you", "shape of you", 100},
		{"shape", "shape of you", 100}, // substring window aligns perfectly
		{"", "anything", 0},
		{"anything", "", 0},
	}
	for _, tc := range cases {
		if got := PartialRatio(tc.a, tc.b); got != tc.want {
			t.Fatalf("PartialRatio(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}

	if got := PartialRatio("shap of you", "shape of you"); got < 80 {
		t.Fatalf("near-miss scored %d, expected a high partial ratio", got)
	}
	if got := PartialRatio("xyz", "shape of you"); got >= DefaultFuzzyThreshold {
		t.Fatalf("unrelated strings scored %d, expected below threshold", got)
	}
}
