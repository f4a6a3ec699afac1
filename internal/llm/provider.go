// Package llm provides a provider-agnostic adapter for the optional
// query-translation fallback. The local rule cascade handles the vast
// majority of queries; an LLM is only consulted when no rule matches,
// and its output is never trusted beyond best-effort hint parsing.
// Zero external dependencies; uses net/http directly.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider is the interface for LLM completions.
type Provider interface {
	// Complete sends a prompt and returns the response text.
	Complete(ctx context.Context, prompt string, opts CompletionOpts) (string, error)
	// Name returns a human-readable provider name (e.g., "google/gemini-2.5-flash").
	Name() string
}

// CompletionOpts configures a single completion request.
type CompletionOpts struct {
	MaxTokens   int     // Max tokens to generate (0 = provider default)
	Temperature float64 // 0.0-2.0 (0 = deterministic)
	System      string  // System prompt (optional)
}

// Config holds provider configuration.
type Config struct {
	Provider string // "google", "openrouter"
	Model    string // e.g., "gemini-2.5-flash", "openai/gpt-4o-mini"
	APIKey   string // API key (empty = read from env)
	BaseURL  string // Optional URL override
}

// NewProvider creates an LLM provider from the given config.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "google":
		key := firstEnv(cfg.APIKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("google provider requires GEMINI_API_KEY or GOOGLE_API_KEY env var")
		}
		return &googleProvider{
			apiKey:  key,
			model:   defaultString(cfg.Model, "gemini-2.5-flash"),
			baseURL: defaultString(cfg.BaseURL, "https://generativelanguage.googleapis.com/v1beta"),
		}, nil

	case "openrouter":
		key := firstEnv(cfg.APIKey, "OPENROUTER_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("openrouter provider requires OPENROUTER_API_KEY env var")
		}
		return &openrouterProvider{
			apiKey:  key,
			model:   defaultString(cfg.Model, "openai/gpt-4o-mini"),
			baseURL: defaultString(cfg.BaseURL, "https://openrouter.ai/api/v1"),
		}, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (supported: google, openrouter)", cfg.Provider)
	}
}

// ParseFlag parses an --llm flag value into a Config.
// Format: "provider/model", e.g. "google/gemini-2.5-flash",
// "openrouter/openai/gpt-4o-mini".
func ParseFlag(flag string) (Config, error) {
	if flag == "" {
		return Config{Provider: "google", Model: "gemini-2.5-flash"}, nil
	}

	provider, model, ok := strings.Cut(flag, "/")
	if !ok {
		return Config{}, fmt.Errorf("invalid --llm format %q: expected provider/model (e.g., google/gemini-2.5-flash)", flag)
	}

	provider = strings.ToLower(provider)
	switch provider {
	case "google", "openrouter":
		return Config{Provider: provider, Model: model}, nil
	default:
		return Config{}, fmt.Errorf("unknown provider %q in --llm flag (supported: google, openrouter)", provider)
	}
}

func firstEnv(explicit string, envKeys ...string) string {
	if explicit != "" {
		return explicit
	}
	for _, k := range envKeys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
