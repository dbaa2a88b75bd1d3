// Package config loads engine configuration with precedence:
// defaults, then YAML file, then FAYTUKS_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure. It is read-only after
// Load returns.
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Generation GenerationConfig `yaml:"generation"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// PathsConfig locates the on-disk data the engine works against.
type PathsConfig struct {
	KnowledgeDir string `yaml:"knowledge_dir"`
	DraftsDir    string `yaml:"drafts_dir"`
	BucketsDir   string `yaml:"buckets_dir"`
	HistoryFile  string `yaml:"history_file"`
	LedgerPath   string `yaml:"ledger_path"`
}

// GenerationConfig controls the external text-generation collaborator.
type GenerationConfig struct {
	Provider  string   `yaml:"provider"` // "anthropic" or "openai"
	Model     string   `yaml:"model"`
	MaxTokens int      `yaml:"max_tokens"`
	Timeout   Duration `yaml:"timeout"`
	APIKey    string   `yaml:"-"` // env-only, never in YAML
}

// IngestConfig controls bucket ingestion cycles.
type IngestConfig struct {
	BreakingMaxAge Duration `yaml:"breaking_max_age"`
	OtherMaxAge    Duration `yaml:"other_max_age"`
	BreakingCap    int      `yaml:"breaking_cap"`
	OtherCap       int      `yaml:"other_cap"`
	Interval       Duration `yaml:"interval"`
}

// ServerConfig contains review server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string
// parsing ("10m", "1h30m").
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration from the default path (overridable with
// FAYTUKS_CONFIG_PATH). A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("FAYTUKS_CONFIG_PATH", "config/faytuks.yaml")
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific path; the file must
// exist. Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newDefaults() *Config {
	return &Config{
		Paths: PathsConfig{
			KnowledgeDir: "knowledge",
			DraftsDir:    "drafts",
			BucketsDir:   "buckets",
			HistoryFile:  "knowledge/generation-history.json",
			LedgerPath:   "data/ledger.db",
		},
		Generation: GenerationConfig{
			Provider:  "anthropic",
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 1024,
			Timeout:   Duration(60 * time.Second),
		},
		Ingest: IngestConfig{
			BreakingMaxAge: Duration(10 * time.Minute),
			OtherMaxAge:    Duration(24 * time.Hour),
			BreakingCap:    5,
			OtherCap:       10,
			Interval:       Duration(1 * time.Hour),
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. Only
// non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FAYTUKS_KNOWLEDGE_DIR"); v != "" {
		cfg.Paths.KnowledgeDir = v
	}
	if v := os.Getenv("FAYTUKS_DRAFTS_DIR"); v != "" {
		cfg.Paths.DraftsDir = v
	}
	if v := os.Getenv("FAYTUKS_BUCKETS_DIR"); v != "" {
		cfg.Paths.BucketsDir = v
	}
	if v := os.Getenv("FAYTUKS_HISTORY_FILE"); v != "" {
		cfg.Paths.HistoryFile = v
	}
	if v := os.Getenv("FAYTUKS_LEDGER_PATH"); v != "" {
		cfg.Paths.LedgerPath = v
	}

	if v := os.Getenv("FAYTUKS_PROVIDER"); v != "" {
		cfg.Generation.Provider = v
	}
	if v := os.Getenv("FAYTUKS_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
	if v := os.Getenv("FAYTUKS_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generation.MaxTokens = n
		}
	}
	if v := os.Getenv("FAYTUKS_GENERATION_TIMEOUT"); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.Generation.Timeout = Duration(t)
		}
	}
	// API key resolution: provider-specific variable.
	switch cfg.Generation.Provider {
	case "openai":
		cfg.Generation.APIKey = os.Getenv("OPENAI_API_KEY")
	default:
		cfg.Generation.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if v := os.Getenv("FAYTUKS_BREAKING_MAX_AGE"); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.Ingest.BreakingMaxAge = Duration(t)
		}
	}
	if v := os.Getenv("FAYTUKS_OTHER_MAX_AGE"); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.Ingest.OtherMaxAge = Duration(t)
		}
	}
	if v := os.Getenv("FAYTUKS_INGEST_INTERVAL"); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.Ingest.Interval = Duration(t)
		}
	}

	if v := os.Getenv("FAYTUKS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FAYTUKS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FAYTUKS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Generation.MaxTokens < 1 {
		return fmt.Errorf("generation max_tokens must be positive")
	}
	if c.Ingest.BreakingCap < 1 || c.Ingest.OtherCap < 1 {
		return fmt.Errorf("ingest caps must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
