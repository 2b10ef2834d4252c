// Package config layers command-line flags, environment variables, an
// optional .env file and an optional medborger.yaml into one Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/medborger/internal/analytics"
	"github.com/abhisek/medborger/internal/llm"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "MEDBORGER"

// Config is the resolved application configuration.
type Config struct {
	// DBPath is the sqlite file. Empty means the default location.
	DBPath string
	// BanksDir is the root of the exam banks, laid out {year}/{season}/{file}.
	BanksDir string
	// Lang overrides the stored language preference when set.
	Lang      string
	LogLevel  string
	LogFormat string
	// LogFile receives logs while the TUI owns the terminal.
	LogFile   string
	Analytics analytics.Config
	LLM       llm.Config
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not read .env file", "err", err)
		}
		return
	}
	logger.Debug("loaded .env file")
}

// NewViper binds flags and environment to a fresh viper instance and reads
// medborger.yaml from the working directory or the XDG config directory.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if flags != nil {
		var bindErr error
		// Flags use dashes, keys use underscores: --banks-dir sets banks_dir.
		flags.VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("medborger")
	v.AddConfigPath(".")
	if dir := configHome(); dir != "" {
		v.AddConfigPath(filepath.Join(dir, "medborger"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("banks_dir", "exams")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("analytics.enabled", false)
	v.SetDefault("analytics.endpoint", analytics.DefaultEndpoint)
	v.SetDefault("llm.timeout", llm.DefaultConfig().Timeout)
}

// Load resolves the configuration from flags and the environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v, err := NewViper(flags)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DBPath:    v.GetString("db"),
		BanksDir:  v.GetString("banks_dir"),
		Lang:      v.GetString("lang"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogFile:   v.GetString("log_file"),
		Analytics: analytics.Config{
			Enabled:  v.GetBool("analytics.enabled"),
			Endpoint: v.GetString("analytics.endpoint"),
		},
		LLM: llmConfig(v),
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogPath()
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", cfg.LogFormat)
	}
	return cfg, nil
}

// llmConfig starts from provider discovery on the standard API key variables
// and applies explicit settings on top.
func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.ConfigFromEnv()

	for name, pc := range map[string]*llm.ProviderConfig{
		llm.ProviderGemini:     &cfg.Gemini,
		llm.ProviderOpenAI:     &cfg.OpenAI,
		llm.ProviderAnthropic:  &cfg.Anthropic,
		llm.ProviderOpenRouter: &cfg.OpenRouter,
	} {
		prefix := "llm." + name + "."
		if s := v.GetString(prefix + "api_key"); s != "" {
			pc.APIKey = s
		}
		if s := v.GetString(prefix + "model"); s != "" {
			pc.Model = s
		}
		if s := v.GetString(prefix + "base_url"); s != "" {
			pc.BaseURL = s
		}
	}

	if p := v.GetString("llm.provider"); p != "" {
		cfg.Provider = p
	}
	if d := v.GetDuration("llm.timeout"); d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultLogPath returns $XDG_STATE_HOME/medborger/medborger.log, falling
// back to ~/.local/state.
func DefaultLogPath() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "medborger.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "medborger", "medborger.log")
}

func configHome() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
