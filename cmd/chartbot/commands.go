package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hurttlocker/chartbot/internal/agg"
	"github.com/hurttlocker/chartbot/internal/answer"
	"github.com/hurttlocker/chartbot/internal/config"
	"github.com/hurttlocker/chartbot/internal/intent"
	"github.com/hurttlocker/chartbot/internal/llm"
	"github.com/hurttlocker/chartbot/internal/match"
	chartmcp "github.com/hurttlocker/chartbot/internal/mcp"
	"github.com/hurttlocker/chartbot/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

// cliOpts holds the flags shared across subcommands plus the remaining
// positional arguments.
type cliOpts struct {
	configPath string
	dataset    string
	db         string
	llmFlag    string
	fuzzy      string
	yearFlag   string
	decadeFlag string
	limitFlag  string
	verbose    bool
	noLLM      bool
	rest       []string
}

func parseArgs(args []string) (cliOpts, error) {
	var opts cliOpts

	// takeValue reads a flag's value from "--flag value" or "--flag=value".
	takeValue := func(i *int, arg, name string) (string, bool, error) {
		if arg == name {
			if *i+1 >= len(args) {
				return "", false, fmt.Errorf("%s requires a value", name)
			}
			*i++
			return args[*i], true, nil
		}
		if strings.HasPrefix(arg, name+"=") {
			return strings.TrimPrefix(arg, name+"="), true, nil
		}
		return "", false, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			opts.rest = append(opts.rest, arg)
			continue
		}
		if arg == "--verbose" {
			opts.verbose = true
			continue
		}
		if arg == "--no-llm" {
			opts.noLLM = true
			continue
		}
		matched := false
		for _, f := range []struct {
			name string
			dst  *string
		}{
			{"--config", &opts.configPath},
			{"--dataset", &opts.dataset},
			{"--db", &opts.db},
			{"--llm", &opts.llmFlag},
			{"--fuzzy-threshold", &opts.fuzzy},
			{"--year", &opts.yearFlag},
			{"--decade", &opts.decadeFlag},
			{"-n", &opts.limitFlag},
			{"--limit", &opts.limitFlag},
		} {
			v, ok, err := takeValue(&i, arg, f.name)
			if err != nil {
				return opts, err
			}
			if ok {
				*f.dst = v
				matched = true
				break
			}
		}
		if !matched {
			return opts, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

func resolveConfig(opts cliOpts) (config.ResolvedConfig, error) {
	return config.ResolveConfig(config.ResolveOptions{
		ConfigPath: opts.configPath,
		CLIDataset: opts.dataset,
		CLIDBPath:  opts.db,
		CLILLM:     opts.llmFlag,
		CLIFuzzy:   opts.fuzzy,
	})
}

// loadStore loads the dataset, preferring an explicit CLI dataset, then an
// existing SQLite snapshot, then a dataset path from config or env.
func loadStore(ctx context.Context, opts cliOpts, cfg config.ResolvedConfig) (*store.Store, error) {
	if opts.dataset != "" {
		return store.LoadCSV(config.ExpandUserPath(opts.dataset))
	}

	dbPath := cfg.DBPath.Value
	if dbPath == "" {
		dbPath = config.ExpandUserPath(store.DefaultDBPath)
	}
	if _, err := os.Stat(dbPath); err == nil {
		return store.OpenSQLite(ctx, dbPath)
	}

	if cfg.DatasetPath.Value != "" {
		return store.LoadCSV(cfg.DatasetPath.Value)
	}
	return nil, fmt.Errorf("no dataset found: pass --dataset <csv>, set dataset_path in %s, or run 'chartbot import' first", cfg.ConfigPath)
}

// buildTranslator wires the optional LLM fallback. Any wiring failure is
// reported and the translator is simply disabled; local rules keep working.
func buildTranslator(opts cliOpts, cfg config.ResolvedConfig) answer.Translator {
	if opts.noLLM || cfg.LLMModel.Value == "" {
		return nil
	}

	llmCfg, err := llm.ParseFlag(cfg.LLMModel.Value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM fallback disabled: %v\n", err)
		return nil
	}
	llmCfg.APIKey = cfg.APIKeyForProvider(llmCfg.Provider).Value

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM fallback disabled: %v\n", err)
		return nil
	}
	return llm.NewTranslator(provider)
}

func buildEngine(ctx context.Context, opts cliOpts) (*store.Store, *agg.Engine, *answer.Engine, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := loadStore(ctx, opts, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	a := agg.NewEngine(s)
	e := answer.New(s, a, answer.Options{
		Translator:     buildTranslator(opts, cfg),
		FuzzyThreshold: cfg.FuzzyThreshold.IntOr(match.DefaultFuzzyThreshold),
		Verbose:        opts.verbose,
	})
	return s, a, e, nil
}

func runAsk(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(opts.rest) == 0 {
		return fmt.Errorf("usage: chartbot ask <question>")
	}

	ctx := context.Background()
	_, _, engine, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Println(engine.Respond(ctx, strings.Join(opts.rest, " ")))
	return nil
}

func runChat(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, _, engine, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("🎵 Billboard Hot 100 chatbot (%d-%d). Ask away, or 'exit' to quit.\n", s.MinYear(), s.MaxYear())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		fmt.Println(engine.Respond(ctx, line))
		fmt.Println()
	}
	return scanner.Err()
}

func runTop(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if opts.yearFlag == "" && opts.decadeFlag == "" {
		return fmt.Errorf("usage: chartbot top --year <yyyy> | --decade <80s|1980> [-n <count>]")
	}

	ctx := context.Background()
	s, a, _, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	n := 0
	if opts.limitFlag != "" {
		v, err := strconv.Atoi(opts.limitFlag)
		if err != nil {
			return fmt.Errorf("invalid -n value %q", opts.limitFlag)
		}
		n = intent.ClampN(v)
	}

	if opts.yearFlag != "" {
		year, err := strconv.Atoi(opts.yearFlag)
		if err != nil {
			return fmt.Errorf("invalid --year value %q", opts.yearFlag)
		}
		if !s.ValidYear(year) {
			return fmt.Errorf("year %d is outside the dataset range %d-%d", year, s.MinYear(), s.MaxYear())
		}
		if n == 0 {
			n = intent.DefaultTopN
		}
		fmt.Println(answer.FormatTopSongs(a.TopByYear(year, n), year))
		return nil
	}

	start := intent.NormalizeDecade(strings.TrimSuffix(opts.decadeFlag, "s"))
	if start == 0 {
		return fmt.Errorf("invalid --decade value %q (try '80s' or '1980')", opts.decadeFlag)
	}
	if n == 0 {
		n = intent.DefaultDecadeN
	}
	fmt.Println(answer.FormatDecadeSongs(a.TopByDecade(start, n), start))
	return nil
}

func runArtist(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(opts.rest) == 0 {
		return fmt.Errorf("usage: chartbot artist <name> [-n <count>]")
	}

	ctx := context.Background()
	_, a, _, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	limit := intent.MaxTopN
	if opts.limitFlag != "" {
		v, err := strconv.Atoi(opts.limitFlag)
		if err != nil {
			return fmt.Errorf("invalid -n value %q", opts.limitFlag)
		}
		limit = intent.ClampN(v)
	}

	name := strings.Join(opts.rest, " ")
	songs := a.ByArtist(name, limit)
	if len(songs) == 0 {
		fmt.Printf("No charting songs found for %q.\n", name)
		return nil
	}
	for i, song := range songs {
		fmt.Printf("%2d. %s (%d) — %d weeks, peaked at #%d\n",
			i+1, song.Song, song.FirstYear, song.WeeksOnChart, song.PeakRank)
	}
	return nil
}

func runStats(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	s, err := loadStore(ctx, opts, cfg)
	if err != nil {
		return err
	}

	stats := s.Stats()
	fmt.Printf("Chart entries:  %d\n", stats.TotalEntries)
	fmt.Printf("Unique songs:   %d\n", stats.UniqueSongs)
	fmt.Printf("Unique artists: %d\n", stats.UniqueArtists)
	fmt.Printf("Years covered:  %d-%d\n", stats.MinYear, stats.MaxYear)
	return nil
}

func runImport(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	datasetPath := cfg.DatasetPath.Value
	if datasetPath == "" {
		return fmt.Errorf("usage: chartbot import --dataset <csv> [--db <path>]")
	}

	s, err := store.LoadCSV(datasetPath)
	if err != nil {
		return err
	}

	dbPath := cfg.DBPath.Value
	if dbPath == "" {
		dbPath = config.ExpandUserPath(store.DefaultDBPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	ctx := context.Background()
	if err := store.ImportSQLite(ctx, dbPath, s); err != nil {
		return err
	}
	fmt.Printf("Imported %d chart entries into %s\n", s.Stats().TotalEntries, dbPath)
	return nil
}

func runServe(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, a, engine, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	srv := chartmcp.NewServer(chartmcp.ServerConfig{
		Store:   s,
		Agg:     a,
		Answer:  engine,
		Version: version,
	})
	fmt.Fprintln(os.Stderr, "chartbot MCP server listening on stdio")
	return server.ServeStdio(srv)
}

func runConfig(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	// Keys are shown by source only, never by value.
	redacted := cfg
	redacted.LLMKeys = map[string]config.ResolvedValue{}
	for provider, v := range cfg.LLMKeys {
		redacted.LLMKeys[provider] = config.ResolvedValue{Value: "(set)", Source: v.Source, From: v.From}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(redacted)
}
