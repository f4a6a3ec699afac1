package intent

import (
	"strconv"
	"strings"
)

// ParseHint converts a structured hint string, the "intent: X; key: value"
// format an LLM translator is asked to emit, into a ParsedQuery. The
// translator is not guaranteed to follow the format, so parsing is
// best-effort: segments split on semicolons, each on its FIRST colon only
// (values may contain colons), and malformed segments are skipped rather
// than failing the whole parse. Unrecognized or missing intents come back
// as IntentUnknown.
func ParseHint(raw string) ParsedQuery {
	fields := make(map[string]string)
	for _, segment := range strings.Split(strings.TrimSpace(raw), ";") {
		segment = strings.TrimSpace(segment)
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}

	parsed := ParsedQuery{Intent: normalizeHintIntent(fields["intent"])}

	if y, err := strconv.Atoi(fields["year"]); err == nil {
		parsed.Year = y
	}
	if d, err := strconv.Atoi(fields["decade_start"]); err == nil {
		parsed.DecadeStart = d
	}
	if n, err := strconv.Atoi(fields["n"]); err == nil {
		parsed.N = ClampN(n)
	} else if parsed.Intent == IntentTopSongs {
		parsed.N = DefaultTopN
	} else if parsed.Intent == IntentTopSongsDecade {
		parsed.N = DefaultDecadeN
	}
	parsed.Song = fields["song"]
	parsed.Artist = fields["artist"]

	return parsed
}

func normalizeHintIntent(raw string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(raw))) {
	case IntentTopSongs:
		return IntentTopSongs
	case IntentTopSongsDecade:
		return IntentTopSongsDecade
	case IntentSongDuration:
		return IntentSongDuration
	case IntentSongDurationWithArtist:
		return IntentSongDurationWithArtist
	default:
		return IntentUnknown
	}
}
