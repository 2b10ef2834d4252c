package llm

import (
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the provider used for explanations.
type Config struct {
	// Provider is one of the Provider* names.
	Provider string

	Gemini     ProviderConfig
	OpenAI     ProviderConfig
	Anthropic  ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// ProviderConfig holds the credentials and model for one provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional endpoint override
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets gemini-2.0-flash with no credential.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     ProviderConfig{Model: "gemini-2.0-flash"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envKeys lists, per provider, the variables consulted for its API key in
// priority order.
var envKeys = map[string][]string{
	ProviderGemini:     {"MEDBORGER_GEMINI_API_KEY", "GEMINI_API_KEY", "REACT_APP_GEMINI_API_KEY"},
	ProviderOpenAI:     {"MEDBORGER_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic:  {"MEDBORGER_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderOpenRouter: {"MEDBORGER_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
}

// discoveryOrder is the order providers are probed when none is chosen.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// ConfigFromEnv fills credentials from the environment. An explicit
// MEDBORGER_LLM_PROVIDER wins; otherwise the first provider with a key is
// chosen, falling back to gemini without a key.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, name := range discoveryOrder {
		pc := cfg.provider(name)
		pc.APIKey = lookupEnv(envKeys[name]...)
		if m := os.Getenv("MEDBORGER_" + strings.ToUpper(name) + "_MODEL"); m != "" {
			pc.Model = m
		}
	}
	if u := os.Getenv("MEDBORGER_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if p := os.Getenv("MEDBORGER_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
		return cfg
	}
	for _, name := range discoveryOrder {
		if cfg.provider(name).APIKey != "" {
			cfg.Provider = name
			break
		}
	}
	return cfg
}

// Validate checks that the selected provider is known and has a key.
// A missing key yields *ErrNotConfigured.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	pc := c.Selected()
	if pc == nil {
		return &ErrUnknownProvider{Name: c.Provider}
	}
	if pc.APIKey == "" {
		return &ErrNotConfigured{Provider: c.Provider, EnvVar: envKeys[c.Provider][0]}
	}
	return nil
}

// Selected returns the settings of the chosen provider, or nil when the
// provider name is unknown.
func (c Config) Selected() *ProviderConfig {
	return c.provider(c.Provider)
}

func (c *Config) provider(name string) *ProviderConfig {
	switch name {
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

func lookupEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
