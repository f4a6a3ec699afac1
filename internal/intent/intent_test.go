package intent

import "testing"

func TestParse_TopSongsWithCount(t *testing.T) {
	cases := []struct {
		query string
		year  int
		n     int
	}{
		{"Top 3 songs of 2020", 2020, 3},
		{"top 10 songs from 1999", 1999, 10},
		{"best 5 hits of 1985", 1985, 5},
		{"show me top 15 songs of 1999", 1999, 15},
		{"5 best songs in 2012", 2012, 5},
		{"Top 99 songs of 2000", 2000, MaxTopN}, // capped
	}
	for _, tc := range cases {
		got := Parse(tc.query)
		if got.Intent != IntentTopSongs {
			t.Fatalf("Parse(%q).Intent = %q, want top_songs", tc.query, got.Intent)
		}
		if got.Year != tc.year || got.N != tc.n {
			t.Fatalf("Parse(%q) = year %d n %d, want year %d n %d", tc.query, got.Year, got.N, tc.year, tc.n)
		}
	}
}

func TestParse_TopSongsDefaultCount(t *testing.T) {
	for _, q := range []string{
		"top songs of 2020",
		"best hits from 1985",
		"popular songs in 1972",
	} {
		got := Parse(q)
		if got.Intent != IntentTopSongs || got.N != DefaultTopN {
			t.Fatalf("Parse(%q) = %+v, want top_songs with default n", q, got)
		}
	}
}

func TestParse_Decade(t *testing.T) {
	cases := []struct {
		query string
		start int
	}{
		{"Best songs from the 80s", 1980},
		{"top hits from the 90s", 1990},
		{"best songs from the 00s", 2000},
		{"top songs from the 10s", 2010},
		{"top hits from 2000s", 2000},
		{"best of the 70s", 1970},
		{"best of 2010s", 2010},
	}
	for _, tc := range cases {
		got := Parse(tc.query)
		if got.Intent != IntentTopSongsDecade {
			t.Fatalf("Parse(%q).Intent = %q, want top_songs_decade", tc.query, got.Intent)
		}
		if got.DecadeStart != tc.start || got.N != DefaultDecadeN {
			t.Fatalf("Parse(%q) = start %d n %d, want start %d n %d",
				tc.query, got.DecadeStart, got.N, tc.start, DefaultDecadeN)
		}
	}
}

func TestParse_DurationWithArtist(t *testing.T) {
	cases := []struct {
		query  string
		song   string
		artist string
	}{
		{"How long did Hotline Bling by Drake stay on the chart?", "hotline bling", "drake"},
		{"how many weeks was God's Plan by Drake on chart", "god's plan", "drake"},
		{"duration of Umbrella by Rihanna", "umbrella", "rihanna"},
		{"Back to Back by Drake on the chart?", "back to back", "drake"},
	}
	for _, tc := range cases {
		got := Parse(tc.query)
		if got.Intent != IntentSongDurationWithArtist {
			t.Fatalf("Parse(%q).Intent = %q, want song_duration_with_artist", tc.query, got.Intent)
		}
		if got.Song != tc.song || got.Artist != tc.artist {
			t.Fatalf("Parse(%q) = song %q artist %q, want %q / %q",
				tc.query, got.Song, got.Artist, tc.song, tc.artist)
		}
	}
}

func TestParse_Duration(t *testing.T) {
	cases := []struct {
		query string
		song  string
	}{
		{"How long did Shape of You stay on the chart?", "shape of you"},
		{"how many weeks was Blinding Lights on chart", "blinding lights"},
		{"Shape of You duration", "shape of you"},
		{"Judy on chart", "judy"},
		{"Blinding Lights billboard", "blinding lights"},
	}
	for _, tc := range cases {
		got := Parse(tc.query)
		if got.Intent != IntentSongDuration {
			t.Fatalf("Parse(%q).Intent = %q, want song_duration", tc.query, got.Intent)
		}
		if got.Song != tc.song {
			t.Fatalf("Parse(%q).Song = %q, want %q", tc.query, got.Song, tc.song)
		}
	}
}

func TestParse_ArtistRulesWinOverGeneric(t *testing.T) {
	got := Parse("How long did Hotline Bling by Drake stay on the chart?")
	if got.Intent != IntentSongDurationWithArtist {
		t.Fatalf("artist-qualified query fell through to %q", got.Intent)
	}
	if got.Artist == "" {
		t.Fatal("artist swallowed into song field")
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, q := range []string{"asdkjaskjd", "", "   ", "what is the meaning of life"} {
		if got := Parse(q); got.Intent != IntentUnknown {
			t.Fatalf("Parse(%q).Intent = %q, want unknown", q, got.Intent)
		}
	}
}

func TestNormalizeDecade(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"80", 1980},
		{"50", 1950},
		{"90", 1990},
		{"00", 2000},
		{"10", 2010},
		{"20", 2020},
		{"49", 2049},
		{"2000", 2000},
		{"2010", 2010},
		{"5", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := NormalizeDecade(tc.token); got != tc.want {
			t.Fatalf("NormalizeDecade(%q) = %d, want %d", tc.token, got, tc.want)
		}
	}
}

func TestStripStopWords_Idempotent(t *testing.T) {
	in := "the shape of you on the billboard hot 100 chart"
	once := StripStopWords(in, songStopRE)
	twice := StripStopWords(once, songStopRE)
	if once != twice {
		t.Fatalf("stripping is not idempotent: %q vs %q", once, twice)
	}
	if once != "shape of you" {
		t.Fatalf("stripped = %q, want %q", once, "shape of you")
	}
}

func TestParseHint(t *testing.T) {
	got := ParseHint("intent: top_songs; year: 2020; n: 5")
	if got.Intent != IntentTopSongs || got.Year != 2020 || got.N != 5 {
		t.Fatalf("ParseHint = %+v", got)
	}
}

func TestParseHint_ValueWithColon(t *testing.T) {
	got := ParseHint("intent: song_duration; song: 9 to 5: the musical")
	if got.Intent != IntentSongDuration {
		t.Fatalf("intent = %q", got.Intent)
	}
	if got.Song != "9 to 5: the musical" {
		t.Fatalf("song = %q, colon value was split wrong", got.Song)
	}
}

func TestParseHint_Malformed(t *testing.T) {
	// Broken segments are skipped, not fatal.
	got := ParseHint("garbage;; intent: top_songs; year twenty; year: 2001; : empty")
	if got.Intent != IntentTopSongs || got.Year != 2001 {
		t.Fatalf("ParseHint = %+v", got)
	}

	if got := ParseHint(""); got.Intent != IntentUnknown {
		t.Fatalf("empty hint intent = %q", got.Intent)
	}
	if got := ParseHint("complete nonsense from the model"); got.Intent != IntentUnknown {
		t.Fatalf("nonsense hint intent = %q", got.Intent)
	}
	if got := ParseHint("intent: make_coffee"); got.Intent != IntentUnknown {
		t.Fatalf("unexpected intent accepted: %q", got.Intent)
	}
}

func TestParseHint_QuotedSongAndCap(t *testing.T) {
	got := ParseHint(`intent: song_duration; song: "Shape of You"; n: 400`)
	if got.Song != "Shape of You" {
		t.Fatalf("song = %q, quotes not stripped", got.Song)
	}
	if got.N != MaxTopN {
		t.Fatalf("n = %d, want cap %d", got.N, MaxTopN)
	}
}
