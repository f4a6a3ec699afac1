// Package config resolves chartbot settings from a YAML file, environment
// variables, and CLI flags, in that precedence order. Every resolved value
// records where it came from so `chartbot config` can explain itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// IntOr parses the value as an integer, returning fallback when the value
// is empty or unparseable.
func (v ResolvedValue) IntOr(fallback int) int {
	s := strings.TrimSpace(v.Value)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

type ResolveOptions struct {
	ConfigPath string
	CLIDataset string
	CLIDBPath  string
	CLILLM     string
	CLIFuzzy   string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DatasetPath    ResolvedValue `json:"dataset_path"`
	DBPath         ResolvedValue `json:"db_path"`
	LLMModel       ResolvedValue `json:"llm_model"`
	FuzzyThreshold ResolvedValue `json:"fuzzy_threshold"`

	LLMKeys map[string]ResolvedValue `json:"llm_keys,omitempty"`
}

type fileConfig struct {
	DatasetPath string `yaml:"dataset_path"`
	DBPath      string `yaml:"db_path"`
	LLM         struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"`
	} `yaml:"llm"`
	Match struct {
		FuzzyThreshold string `yaml:"fuzzy_threshold"`
	} `yaml:"match"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chartbot", "config.yaml")
}

// ResolveConfig layers file, environment, and CLI values. A missing config
// file is not an error; a malformed one is.
func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{
		ConfigPath: path,
		LLMKeys:    map[string]ResolvedValue{},
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DatasetPath, cfg.DatasetPath, SourceConfig, path)
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.LLMModel, cfg.LLM.Model, SourceConfig, path)
		apply(&out.FuzzyThreshold, cfg.Match.FuzzyThreshold, SourceConfig, path)

		if key := strings.TrimSpace(cfg.LLM.APIKey); key != "" {
			provider := providerOf(cfg.LLM.Model)
			if provider == "" {
				provider = "default"
			}
			out.LLMKeys[provider] = ResolvedValue{Value: key, Source: SourceConfig, From: path}
		}
	}

	applyEnv(&out.DatasetPath, "CHARTBOT_DATASET")
	applyEnv(&out.DBPath, "CHARTBOT_DB")
	applyEnv(&out.LLMModel, "CHARTBOT_LLM")
	applyEnv(&out.FuzzyThreshold, "CHARTBOT_FUZZY_THRESHOLD")

	for env, provider := range map[string]string{
		"OPENROUTER_API_KEY": "openrouter",
		"GEMINI_API_KEY":     "google",
		"GOOGLE_API_KEY":     "google",
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			out.LLMKeys[provider] = ResolvedValue{Value: v, Source: SourceEnv, From: env}
		}
	}

	apply(&out.DatasetPath, opts.CLIDataset, SourceCLI, "--dataset")
	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.LLMModel, opts.CLILLM, SourceCLI, "--llm")
	apply(&out.FuzzyThreshold, opts.CLIFuzzy, SourceCLI, "--fuzzy-threshold")

	out.DatasetPath.Value = ExpandUserPath(out.DatasetPath.Value)
	out.DBPath.Value = ExpandUserPath(out.DBPath.Value)

	return out, nil
}

// APIKeyForProvider returns the key resolved for a provider or
// provider/model string, falling back to a provider-less file key.
func (r ResolvedConfig) APIKeyForProvider(providerOrModel string) ResolvedValue {
	provider := providerOf(providerOrModel)
	if provider == "" {
		return ResolvedValue{}
	}
	if v, ok := r.LLMKeys[provider]; ok && strings.TrimSpace(v.Value) != "" {
		return v
	}
	if v, ok := r.LLMKeys["default"]; ok && strings.TrimSpace(v.Value) != "" {
		return v
	}
	return ResolvedValue{}
}

func providerOf(providerOrModel string) string {
	v := strings.ToLower(strings.TrimSpace(providerOrModel))
	if v == "" {
		return ""
	}
	if idx := strings.Index(v, "/"); idx > 0 {
		return v[:idx]
	}
	return v
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// ExpandUserPath expands a leading ~/ to the current user's home directory.
func ExpandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
