package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// translateTimeout is the maximum time to wait for the LLM translator.
// One attempt, no retry; the caller degrades to the unknown intent on failure.
const translateTimeout = 5 * time.Second

const translateSystemPrompt = `You are a music chart query parser for a Billboard Hot 100 dataset.

Convert the user's question into EXACTLY one line of semicolon-separated key-value pairs:
intent: <type>; [year: YYYY]; [n: NUMBER]; [song: SONG NAME]; [artist: ARTIST NAME]; [decade_start: YYYY]

INTENT TYPES:
- top_songs          (top/best songs of a year)
- top_songs_decade   (top/best songs of a decade)
- song_duration      (how long a song was on the chart)
- song_duration_with_artist (duration question naming the artist)

EXAMPLES:
Query: "Show me top 10 songs of 2020"
Output: intent: top_songs; year: 2020; n: 10

Query: "Best hits of the nineties"
Output: intent: top_songs_decade; decade_start: 1990; n: 20

Query: "How long was Shape of You on the chart?"
Output: intent: song_duration; song: Shape of You

Query: "Weeks on chart for Hotline Bling by Drake"
Output: intent: song_duration_with_artist; song: Hotline Bling; artist: Drake

RULES:
- Return EXACTLY one intent and nothing else, no prose, no code fences
- Song and artist names without quotes
- Default n is 10 for top_songs and 20 for top_songs_decade`

// Translator converts a natural-language chart question into the structured
// hint format consumed by intent.ParseHint. The model output is treated as
// untrusted text; validation happens entirely on the caller's side.
type Translator struct {
	provider Provider
}

// NewTranslator wraps a provider as a query translator.
func NewTranslator(provider Provider) *Translator {
	return &Translator{provider: provider}
}

// Name returns the underlying provider name.
func (t *Translator) Name() string {
	return t.provider.Name()
}

// Translate asks the model for a structured hint line. It makes a single
// attempt with a hard timeout and returns the raw (possibly malformed)
// model text on success.
func (t *Translator) Translate(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query")
	}

	ctx, cancel := context.WithTimeout(ctx, translateTimeout)
	defer cancel()

	resp, err := t.provider.Complete(ctx, "Query: "+query+"\nOutput:", CompletionOpts{
		System:      translateSystemPrompt,
		MaxTokens:   80,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("translating query: %w", err)
	}
	return strings.TrimSpace(resp), nil
}
