package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hurttlocker/chartbot/internal/config"
)

const testCSV = `date,rank,song,artist,last-week,peak-rank,weeks-on-board
2020-01-04,1,Circles,Post Malone,1,1,35
2020-01-04,2,The Box,Roddy Ricch,3,1,20
1985-06-15,2,Shout,Tears for Fears,4,1,20
`

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{
		"how", "long", "was", "Circles", "on", "the", "chart",
		"--dataset", "charts.csv",
		"--db=snapshot.db",
		"--fuzzy-threshold", "70",
		"--verbose",
		"--no-llm",
	})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opts.dataset != "charts.csv" {
		t.Fatalf("dataset = %q", opts.dataset)
	}
	if opts.db != "snapshot.db" {
		t.Fatalf("db = %q", opts.db)
	}
	if opts.fuzzy != "70" {
		t.Fatalf("fuzzy = %q", opts.fuzzy)
	}
	if !opts.verbose || !opts.noLLM {
		t.Fatalf("booleans not set: %+v", opts)
	}
	if got := len(opts.rest); got != 7 {
		t.Fatalf("expected 7 positional args, got %d: %v", got, opts.rest)
	}
}

func TestParseArgs_UnknownFlag(t *testing.T) {
	if _, err := parseArgs([]string{"--frobnicate"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestParseArgs_MissingValue(t *testing.T) {
	if _, err := parseArgs([]string{"--dataset"}); err == nil {
		t.Fatal("expected error for flag without value")
	}
}

func TestLoadStore_ExplicitDataset(t *testing.T) {
	csvPath := writeTestCSV(t)
	opts := cliOpts{dataset: csvPath}

	s, err := loadStore(context.Background(), opts, config.ResolvedConfig{})
	if err != nil {
		t.Fatalf("loadStore: %v", err)
	}
	if got := s.Stats().TotalEntries; got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
	if s.MinYear() != 1985 || s.MaxYear() != 2020 {
		t.Fatalf("unexpected bounds %d-%d", s.MinYear(), s.MaxYear())
	}
}

func TestLoadStore_NothingConfigured(t *testing.T) {
	cfg := config.ResolvedConfig{ConfigPath: "/nonexistent/config.yaml"}
	// Point the db path somewhere that does not exist so the snapshot
	// branch is skipped.
	cfg.DBPath = config.ResolvedValue{Value: filepath.Join(t.TempDir(), "no.db")}

	if _, err := loadStore(context.Background(), cliOpts{}, cfg); err == nil {
		t.Fatal("expected error when no dataset is configured")
	}
}

func TestBuildTranslator_Disabled(t *testing.T) {
	cfg := config.ResolvedConfig{
		LLMModel: config.ResolvedValue{Value: "google/gemini-2.5-flash"},
	}
	if tr := buildTranslator(cliOpts{noLLM: true}, cfg); tr != nil {
		t.Fatal("expected nil translator with --no-llm")
	}
	if tr := buildTranslator(cliOpts{}, config.ResolvedConfig{}); tr != nil {
		t.Fatal("expected nil translator without a configured model")
	}
}

func TestBuildEngine_EndToEnd(t *testing.T) {
	csvPath := writeTestCSV(t)
	opts := cliOpts{dataset: csvPath, noLLM: true}

	ctx := context.Background()
	s, a, engine, err := buildEngine(ctx, opts)
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if s == nil || a == nil || engine == nil {
		t.Fatal("buildEngine returned nil component")
	}

	out := engine.Respond(ctx, "top 2 songs of 2020")
	if out == "" {
		t.Fatal("empty response")
	}
}
