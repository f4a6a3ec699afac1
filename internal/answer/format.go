package answer

import (
	"fmt"
	"strings"

	"github.com/hurttlocker/chartbot/internal/agg"
	"github.com/hurttlocker/chartbot/internal/match"
)

// Week thresholds for the qualitative chart-run comment, evaluated high to
// low. Ordered, non-overlapping bands.
const (
	bandLegendary = 50
	bandMajorHit  = 30
	bandSolidHit  = 15
)

// FormatTopSongs renders a year's top-song list. The header states the
// actual count returned, which may be less than requested.
func FormatTopSongs(songs []agg.SongAggregate, year int) string {
	if len(songs) == 0 {
		return fmt.Sprintf("📭 No songs found for %d. Try a different year.", year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎵 **Top %d Billboard Hot 100 songs of %d:**\n\n", len(songs), year)

	lines := make([]string, 0, len(songs))
	for i, s := range songs {
		line := fmt.Sprintf("**%d. %s** by *%s*", i+1, s.Song, s.Artist)
		var details []string
		if s.WeeksOnChart > 0 {
			details = append(details, fmt.Sprintf("• %d weeks on chart", s.WeeksOnChart))
		}
		if s.PeakRank > 0 {
			details = append(details, fmt.Sprintf("• Peaked at #%d", s.PeakRank))
		}
		if len(details) > 0 {
			line += "\n   " + strings.Join(details, "\n   ")
		}
		lines = append(lines, line)
	}

	b.WriteString(strings.Join(lines, "\n\n"))
	return b.String()
}

// FormatDecadeSongs renders a decade's top-song list with the year range
// in the header.
func FormatDecadeSongs(songs []agg.SongAggregate, decadeStart int) string {
	if len(songs) == 0 {
		return fmt.Sprintf("📭 No songs found for the %ds.", decadeStart)
	}

	decadeEnd := decadeStart + 9
	var b strings.Builder
	fmt.Fprintf(&b, "🎵 **Top %d Billboard Hot 100 songs of the %ds (%d–%d):**\n\n",
		len(songs), decadeStart, decadeStart, decadeEnd)

	lines := make([]string, 0, len(songs))
	for i, s := range songs {
		line := fmt.Sprintf("**%d. %s** by *%s* (%d)", i+1, s.Song, s.Artist, s.FirstYear)
		if s.WeeksOnChart > 0 {
			line += fmt.Sprintf("\n   • %d weeks on chart", s.WeeksOnChart)
		}
		lines = append(lines, line)
	}

	b.WriteString(strings.Join(lines, "\n\n"))
	return b.String()
}

// FormatMatches renders a song-duration search result: a no-match
// suggestion, a detailed single-match card, or a disambiguation list.
func FormatMatches(matches []match.Result, originalQuery string) string {
	switch len(matches) {
	case 0:
		return fmt.Sprintf("🔍 Sorry, I couldn't find any songs matching '%s'. Try:\n"+
			"• Check spelling\n"+
			"• Use partial song names (e.g., 'Shape' instead of 'Shape of You')\n"+
			"• Try just the artist name", originalQuery)
	case 1:
		return formatSingleMatch(matches[0])
	default:
		return formatMultipleMatches(matches, originalQuery)
	}
}

func formatSingleMatch(m match.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎵 **%s** by *%s* (%d)\n\n", m.Song, m.Artist, m.Year)
	b.WriteString("📊 **Chart Performance:**\n")
	fmt.Fprintf(&b, "• **%d weeks** on Billboard Hot 100\n", m.WeeksOnChart)
	fmt.Fprintf(&b, "• **Best position:** #%d\n", m.BestRank)
	// Peak rank and best rank are tracked independently; the peak line is
	// only worth printing when they diverge.
	if m.PeakRank != m.BestRank {
		fmt.Fprintf(&b, "• **Peak rank:** #%d\n", m.PeakRank)
	}
	b.WriteString("\n" + durationComment(m.WeeksOnChart))
	return b.String()
}

func formatMultipleMatches(matches []match.Result, originalQuery string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found **%d** songs matching '%s':\n\n", len(matches), originalQuery)

	lines := make([]string, 0, len(matches))
	for i, m := range matches {
		indicator := ""
		switch m.Tier {
		case match.TierExact:
			indicator = " ✅"
		case match.TierFuzzy:
			indicator = fmt.Sprintf(" (%d%% match)", m.Score)
		}
		lines = append(lines, fmt.Sprintf(
			"**%d.** %s by *%s* (%d)%s\n   📊 %d weeks on chart, peaked at #%d",
			i+1, m.Song, m.Artist, m.Year, indicator, m.WeeksOnChart, m.PeakRank))
	}

	b.WriteString(strings.Join(lines, "\n\n"))
	b.WriteString("\n\n💡 **Tip:** Try a more specific query like the full song title for better results.")
	return b.String()
}

// durationComment picks the qualitative band for a chart run length.
func durationComment(weeks int) string {
	switch {
	case weeks >= bandLegendary:
		return "🔥 **Incredible!** This song had amazing staying power on the charts!"
	case weeks >= bandMajorHit:
		return "⭐ **Great performance!** This was a major hit."
	case weeks >= bandSolidHit:
		return "👍 **Solid hit!** Good chart performance."
	default:
		return "📈 **Chart entry** - Brief but notable appearance."
	}
}

// HelpMessage is the usage text returned for unclassifiable queries.
func HelpMessage(minYear, maxYear int) string {
	return fmt.Sprintf(`🤖 **I can help you with Billboard Hot 100 data (%d-%d)!**

**Try these formats:**
• 📊 **Top songs by year**: "Top 10 songs of 1985" or "Best 5 hits from 2020"
• 🎭 **Top songs by decade**: "Best songs from the 80s" or "Top hits of 2000s"
• ⏱ **Song duration**: "How long was Bohemian Rhapsody on the chart?" or just "Judy on chart"
• 🎤 **Artist-specific search**: "How long did Back to Back by Drake stay on the chart?"
• 🎯 **Any year**: Ask about any year from %d to %d!

**Example queries:**
- "Show me top 15 songs of 1999"
- "How many weeks was Blinding Lights on the Billboard chart?"
- "Best songs from the 90s"
- "Shape of You duration"
- "How long did Hotline Bling by Drake stay on chart?"`, minYear, maxYear, minYear, maxYear)
}
