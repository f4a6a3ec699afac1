package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockProvider struct {
	resp string
	err  error
	last string
}

func (m *mockProvider) Complete(ctx context.Context, prompt string, opts CompletionOpts) (string, error) {
	m.last = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.resp, nil
}

func (m *mockProvider) Name() string { return "mock/test" }

func TestParseFlag(t *testing.T) {
	cases := []struct {
		in           string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{"", "google", "gemini-2.5-flash", false},
		{"google/gemini-2.5-flash", "google", "gemini-2.5-flash", false},
		{"openrouter/openai/gpt-4o-mini", "openrouter", "openai/gpt-4o-mini", false},
		{"justmodel", "", "", true},
		{"aws/titan", "", "", true},
	}
	for _, tc := range cases {
		cfg, err := ParseFlag(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseFlag(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFlag(%q): %v", tc.in, err)
		}
		if cfg.Provider != tc.wantProvider || cfg.Model != tc.wantModel {
			t.Fatalf("ParseFlag(%q) = %+v", tc.in, cfg)
		}
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "aws"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestTranslate(t *testing.T) {
	m := &mockProvider{resp: "intent: top_songs; year: 2020; n: 10"}
	tr := NewTranslator(m)

	got, err := tr.Translate(context.Background(), "top songs 2020 please")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "intent: top_songs; year: 2020; n: 10" {
		t.Fatalf("Translate = %q", got)
	}
	if !strings.Contains(m.last, "top songs 2020 please") {
		t.Fatalf("prompt missing query: %q", m.last)
	}
}

func TestTranslate_ProviderError(t *testing.T) {
	tr := NewTranslator(&mockProvider{err: errors.New("boom")})
	if _, err := tr.Translate(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestTranslate_EmptyQuery(t *testing.T) {
	tr := NewTranslator(&mockProvider{resp: "whatever"})
	if _, err := tr.Translate(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}
