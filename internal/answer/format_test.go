package answer

import (
	"strings"
	"testing"

	"github.com/hurttlocker/chartbot/internal/agg"
	"github.com/hurttlocker/chartbot/internal/match"
)

func TestFormatTopSongs_Empty(t *testing.T) {
	got := FormatTopSongs(nil, 1999)
	if !strings.Contains(got, "No songs found for 1999") {
		t.Fatalf("FormatTopSongs(nil) = %q", got)
	}
}

func TestFormatTopSongs_HeaderCountsReturned(t *testing.T) {
	songs := []agg.SongAggregate{
		{Song: "Circles", Artist: "Post Malone", BestRank: 1, PeakRank: 1, WeeksOnChart: 35},
		{Song: "The Box", Artist: "Roddy Ricch", BestRank: 2, PeakRank: 1, WeeksOnChart: 20},
	}
	got := FormatTopSongs(songs, 2020)
	// Header reflects the two songs actually returned, not any requested n.
	if !strings.Contains(got, "Top 2 Billboard Hot 100 songs of 2020:") {
		t.Fatalf("header = %q", got)
	}
	if !strings.Contains(got, "• 35 weeks on chart") || !strings.Contains(got, "• Peaked at #1") {
		t.Fatalf("missing detail lines: %q", got)
	}
}

func TestFormatDecadeSongs(t *testing.T) {
	songs := []agg.SongAggregate{
		{Song: "Shout", Artist: "Tears for Fears", BestRank: 2, PeakRank: 1, WeeksOnChart: 20, FirstYear: 1985},
	}
	got := FormatDecadeSongs(songs, 1980)
	if !strings.Contains(got, "of the 1980s (1980–1989):") {
		t.Fatalf("header = %q", got)
	}
	if !strings.Contains(got, "(1985)") {
		t.Fatalf("missing first year: %q", got)
	}
}

func TestFormatMatches_Multiple(t *testing.T) {
	matches := []match.Result{
		{Song: "Shape of You", Artist: "Ed Sheeran", Year: 2017, WeeksOnChart: 77, PeakRank: 1, Score: 100, Tier: match.TierExact},
		{Song: "Shapes", Artist: "Test Band", Year: 2019, WeeksOnChart: 4, PeakRank: 80, Score: 85, Tier: match.TierContains},
		{Song: "Shape of My Heart", Artist: "Backstreet Boys", Year: 2000, WeeksOnChart: 21, PeakRank: 9, Score: 74, Tier: match.TierFuzzy},
	}
	got := FormatMatches(matches, "shape")
	if !strings.Contains(got, "Found **3** songs matching 'shape':") {
		t.Fatalf("header = %q", got)
	}
	if !strings.Contains(got, "**1.** Shape of You by *Ed Sheeran* (2017) ✅") {
		t.Fatalf("exact match missing indicator: %q", got)
	}
	if !strings.Contains(got, "(74% match)") {
		t.Fatalf("fuzzy match missing score: %q", got)
	}
	// Contains-tier entries carry no indicator.
	if !strings.Contains(got, "**2.** Shapes by *Test Band* (2019)\n") {
		t.Fatalf("contains match formatted unexpectedly: %q", got)
	}
	if !strings.Contains(got, "💡 **Tip:**") {
		t.Fatalf("missing tip footer: %q", got)
	}
}

func TestFormatMatches_SingleDivergentPeak(t *testing.T) {
	got := FormatMatches([]match.Result{
		{Song: "Adore You", Artist: "Harry Styles", Year: 2020, WeeksOnChart: 5, BestRank: 6, PeakRank: 4},
	}, "adore")
	if !strings.Contains(got, "**Best position:** #6") {
		t.Fatalf("missing best position: %q", got)
	}
	if !strings.Contains(got, "**Peak rank:** #4") {
		t.Fatalf("missing divergent peak line: %q", got)
	}
}

func TestDurationComment_Bands(t *testing.T) {
	cases := []struct {
		weeks int
		want  string
	}{
		{77, "Incredible!"},
		{50, "Incredible!"},
		{49, "Great performance!"},
		{30, "Great performance!"},
		{29, "Solid hit!"},
		{15, "Solid hit!"},
		{14, "Chart entry"},
		{1, "Chart entry"},
	}
	for _, tc := range cases {
		if got := durationComment(tc.weeks); !strings.Contains(got, tc.want) {
			t.Fatalf("durationComment(%d) = %q, want substring %q", tc.weeks, got, tc.want)
		}
	}
}

func TestHelpMessage_Bounds(t *testing.T) {
	got := HelpMessage(1958, 2021)
	if !strings.Contains(got, "(1958-2021)") {
		t.Fatalf("help missing bounds: %q", got)
	}
	if !strings.Contains(got, "from 1958 to 2021") {
		t.Fatalf("help missing range line: %q", got)
	}
}
