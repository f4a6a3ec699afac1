// Package answer ties the query pipeline together: parse → route →
// aggregate or match → format. The Engine is the single boundary where
// component failures turn into user-facing text; Respond never returns an
// error and never lets one escape.
package answer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hurttlocker/chartbot/internal/agg"
	"github.com/hurttlocker/chartbot/internal/intent"
	"github.com/hurttlocker/chartbot/internal/match"
	"github.com/hurttlocker/chartbot/internal/store"
)

// Result-set sizes for the two duration intents. The artist-qualified
// search is narrower because the artist filter already disambiguates.
const (
	durationMatchesWithArtist = 3
	durationMatches           = 5
)

// Translator is the optional LLM fallback consulted only when no local
// rule classifies a query. Its output goes through intent.ParseHint and is
// never trusted beyond that.
type Translator interface {
	Translate(ctx context.Context, query string) (string, error)
	Name() string
}

// Options configures an Engine.
type Options struct {
	Translator     Translator // nil disables the LLM fallback
	FuzzyThreshold int        // 0 means match.DefaultFuzzyThreshold
	Verbose        bool       // diagnostics to LogWriter
	LogWriter      io.Writer  // nil means os.Stderr
}

// Engine is the dialogue orchestrator.
type Engine struct {
	store          *store.Store
	agg            *agg.Engine
	match          *match.Engine
	translator     Translator
	fuzzyThreshold int
	verbose        bool
	logw           io.Writer
}

// New builds an engine over an already-loaded store and its aggregation
// engine. The match engine is derived from the aggregation catalog.
func New(s *store.Store, a *agg.Engine, opts Options) *Engine {
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = match.DefaultFuzzyThreshold
	}
	if opts.LogWriter == nil {
		opts.LogWriter = os.Stderr
	}
	return &Engine{
		store:          s,
		agg:            a,
		match:          match.NewEngine(a.Catalog()),
		translator:     opts.Translator,
		fuzzyThreshold: opts.FuzzyThreshold,
		verbose:        opts.Verbose,
		logw:           opts.LogWriter,
	}
}

// Respond handles one query start to finish and always returns displayable
// text. A panic anywhere in the pipeline degrades to a generic apology
// that echoes the error for debuggability.
func (e *Engine) Respond(ctx context.Context, query string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("⚠️ Something went wrong. Please try a different query. (Error: %v)", r)
		}
	}()

	if strings.TrimSpace(query) == "" {
		return "❌ Please enter a valid text query."
	}

	parsed := intent.Parse(query)
	e.logf("parsed %q -> %+v", query, parsed)

	if parsed.Intent == intent.IntentUnknown && e.translator != nil {
		parsed = e.translateFallback(ctx, query)
	}

	switch parsed.Intent {
	case intent.IntentTopSongs:
		return e.respondTopSongs(parsed)
	case intent.IntentTopSongsDecade:
		return e.respondDecade(parsed)
	case intent.IntentSongDurationWithArtist:
		return e.respondDuration(parsed, true)
	case intent.IntentSongDuration:
		return e.respondDuration(parsed, false)
	default:
		return HelpMessage(e.store.MinYear(), e.store.MaxYear())
	}
}

// translateFallback consults the LLM translator once. Any failure, whether
// the call itself or a hint that parses to nothing, degrades to the unknown
// intent rather than propagating.
func (e *Engine) translateFallback(ctx context.Context, query string) intent.ParsedQuery {
	hint, err := e.translator.Translate(ctx, query)
	if err != nil {
		e.logf("translator %s failed: %v", e.translator.Name(), err)
		return intent.ParsedQuery{Intent: intent.IntentUnknown}
	}
	e.logf("translator %s hint: %q", e.translator.Name(), hint)
	return intent.ParseHint(hint)
}

func (e *Engine) respondTopSongs(parsed intent.ParsedQuery) string {
	minYear, maxYear := e.store.MinYear(), e.store.MaxYear()
	if parsed.Year == 0 {
		return fmt.Sprintf("🔍 Please specify a valid year between %d-%d (e.g., 'Top 5 songs of 2012').", minYear, maxYear)
	}
	if !e.store.ValidYear(parsed.Year) {
		return fmt.Sprintf("📅 Sorry, I only have data from %d-%d. Year %d is outside this range.", minYear, maxYear, parsed.Year)
	}
	n := parsed.N
	if n <= 0 {
		n = intent.DefaultTopN
	}
	return FormatTopSongs(e.agg.TopByYear(parsed.Year, n), parsed.Year)
}

func (e *Engine) respondDecade(parsed intent.ParsedQuery) string {
	if parsed.DecadeStart == 0 {
		return "🔍 Please specify a valid decade (e.g., 'Best songs from the 80s')."
	}
	n := parsed.N
	if n <= 0 {
		n = intent.DefaultDecadeN
	}
	return FormatDecadeSongs(e.agg.TopByDecade(parsed.DecadeStart, n), parsed.DecadeStart)
}

func (e *Engine) respondDuration(parsed intent.ParsedQuery, withArtist bool) string {
	if parsed.Song == "" {
		if withArtist {
			return "🔍 Please specify a song name (e.g., 'How long was Thriller by Michael Jackson on the chart?')."
		}
		return "🔍 Please specify a song name (e.g., 'How long was Thriller on the chart?')."
	}

	opts := match.Options{FuzzyThreshold: e.fuzzyThreshold, MaxResults: durationMatches}
	label := parsed.Song
	if withArtist {
		opts.Artist = parsed.Artist
		opts.MaxResults = durationMatchesWithArtist
		if parsed.Artist != "" {
			label = parsed.Song + " by " + parsed.Artist
		}
	}

	matches := e.match.Find(parsed.Song, opts)
	e.logf("found %d matches for %q", len(matches), label)
	return FormatMatches(matches, label)
}

func (e *Engine) logf(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(e.logw, "[chartbot] "+format+"\n", args...)
	}
}
