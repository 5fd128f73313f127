// Package config loads run settings from defaults, an optional YAML/TOML/JSON
// file, DIALECTRAN_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

const EnvPrefix = "DIALECTRAN"

// Backends.
const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
	BackendGoogle = "google"
)

// Pacing policies.
const (
	PacingFixed       = "fixed"
	PacingTokenBucket = "token-bucket"
)

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Input     string `mapstructure:"input"`
	Output    string `mapstructure:"output"`
	Delimiter string `mapstructure:"delimiter"`

	BatchSize     int           `mapstructure:"batch_size"`
	Dialect       string        `mapstructure:"dialect"`
	Delay         time.Duration `mapstructure:"delay"`
	Pacing        string        `mapstructure:"pacing"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Prompt        string        `mapstructure:"prompt"`
	ProgressEvery int           `mapstructure:"progress_every"`

	Backend     string   `mapstructure:"backend"`
	Model       string   `mapstructure:"model"`
	APIKeys     []string `mapstructure:"api_keys"`
	BaseURL     string   `mapstructure:"base_url"`
	Models      []string `mapstructure:"models"`
	Credentials string   `mapstructure:"credentials"`
	ProjectID   string   `mapstructure:"project_id"`
	SourceLang  string   `mapstructure:"source_lang"`
	TargetLang  string   `mapstructure:"target_lang"`

	Log LogConfig `mapstructure:"log"`
}

// SetDefaults registers every key so that environment variables are picked
// up by Unmarshal even when no file or flag mentions them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("delimiter", ",")
	v.SetDefault("batch_size", 20)
	v.SetDefault("dialect", "Jeju")
	v.SetDefault("delay", 2*time.Second)
	v.SetDefault("pacing", PacingFixed)
	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("prompt", "")
	v.SetDefault("progress_every", 5)
	v.SetDefault("backend", BackendGemini)
	v.SetDefault("model", "")
	v.SetDefault("api_keys", []string{})
	v.SetDefault("base_url", "")
	v.SetDefault("models", []string{})
	v.SetDefault("credentials", "")
	v.SetDefault("project_id", "")
	v.SetDefault("source_lang", "ko")
	v.SetDefault("target_lang", "ko")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is only
// an error when the caller asked for it explicitly.
func LoadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the config file (if any) and environment into a Config. Flags
// must already be bound to v. An empty file looks for ./dialectran.* and
// ignores its absence.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("dialectran")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.APIKeys = splitList(cfg.APIKeys)
	cfg.Models = splitList(cfg.Models)
	if len(cfg.APIKeys) == 0 {
		cfg.APIKeys = keysFromEnv(cfg.Backend)
	}

	return &cfg, nil
}

// keysFromEnv returns the provider's conventional key variables.
func keysFromEnv(backend string) []string {
	var names []string
	switch backend {
	case BackendGemini:
		names = []string{"GEMINI_API_KEYS", "GEMINI_API_KEY", "GOOGLE_API_KEY"}
	case BackendOpenAI:
		names = []string{"OPENAI_API_KEY"}
	case BackendGoogle:
		names = []string{"GOOGLE_API_KEY"}
	}
	for _, name := range names {
		if keys := splitList([]string{os.Getenv(name)}); len(keys) > 0 {
			return keys
		}
	}
	return nil
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// DelimiterRune returns the field separator. "tab" and `\t` mean a tab.
func (c *Config) DelimiterRune() rune {
	switch c.Delimiter {
	case "", ",":
		return ','
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks every setting used to build clients and pace the run.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Delimiter {
	case "", ",", "tab", `\t`:
	default:
		if utf8.RuneCountInString(c.Delimiter) != 1 {
			invalid("delimiter %q must be a single character", c.Delimiter)
		} else if r := c.DelimiterRune(); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			invalid("delimiter %q is not allowed", c.Delimiter)
		}
	}

	if c.BatchSize < 1 {
		invalid("batch_size must be at least 1, got %d", c.BatchSize)
	}
	if c.Delay < 0 {
		invalid("delay must not be negative, got %s", c.Delay)
	}
	if c.Timeout < 0 {
		invalid("timeout must not be negative, got %s", c.Timeout)
	}
	if c.ProgressEvery < 0 {
		invalid("progress_every must not be negative, got %d", c.ProgressEvery)
	}
	if strings.TrimSpace(c.Dialect) == "" {
		invalid("dialect must not be empty")
	}

	switch c.Pacing {
	case PacingFixed, PacingTokenBucket:
	default:
		invalid("unknown pacing %q (want %s or %s)", c.Pacing, PacingFixed, PacingTokenBucket)
	}

	switch c.Backend {
	case BackendGemini:
		if len(c.APIKeys) == 0 {
			invalid("gemini backend needs api_keys or GEMINI_API_KEY")
		}
	case BackendOpenAI:
		if len(c.APIKeys) == 0 && c.BaseURL == "" {
			invalid("openai backend needs api_keys, OPENAI_API_KEY or base_url")
		}
	case BackendOllama:
	case BackendGoogle:
		if c.TargetLang == "" {
			invalid("google backend needs target_lang")
		} else if strings.EqualFold(c.SourceLang, c.TargetLang) {
			invalid("google backend is plain machine translation with no dialect support; source_lang and target_lang are both %q", c.TargetLang)
		}
	default:
		invalid("unknown backend %q", c.Backend)
	}

	return errors.Join(errs...)
}

// ValidateFiles checks the input and output paths of a translation run.
func (c *Config) ValidateFiles() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, fmt.Errorf("%w: input file is required", ErrInvalidConfig))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("%w: output file is required", ErrInvalidConfig))
	}
	if c.Input != "" && c.Output != "" && samePath(c.Input, c.Output) {
		errs = append(errs, fmt.Errorf("%w: input file and output file cannot be the same", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
