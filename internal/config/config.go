package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/admetrics/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig              `yaml:"server"`
	Logging   LoggingConfig             `yaml:"logging"`
	Sync      SyncConfig                `yaml:"sync"`
	Sources   []SourceConfig            `yaml:"sources"`
	Platforms map[string]PlatformConfig `yaml:"platforms"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the bind host, preferring the SERVER_HOST env var
// (containers bind 0.0.0.0 while local runs stay on localhost).
func (c ServerConfig) GetHost() string {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SyncConfig holds settings for the sync engine and its retry behavior
type SyncConfig struct {
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	MaxRetries            int `yaml:"max_retries"`
	BackoffBaseMS         int `yaml:"backoff_base_ms"`
	Concurrency           int `yaml:"concurrency"`
	IntervalSeconds       int `yaml:"interval_seconds"`
	LookbackDays          int `yaml:"lookback_days"`
}

// RequestTimeout returns the per-request timeout as a time.Duration
func (c SyncConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// BackoffBase returns the first retry delay as a time.Duration
func (c SyncConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMS) * time.Millisecond
}

// Interval returns the scheduled sync interval as a time.Duration
func (c SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// SourceConfig describes one ad platform account to sync from.
// APIKeyEnv names an environment variable that overrides APIKey, so real
// keys stay out of config files.
type SourceConfig struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Platform  string `yaml:"platform"`
	AccountID string `yaml:"account_id"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	Active    bool   `yaml:"active"`
}

// PlatformConfig holds per-platform API overrides
type PlatformConfig struct {
	BaseURL string `yaml:"base_url"`
}

var (
	// ErrNoSources means not a single source was configured.
	ErrNoSources = errors.New("no data sources configured")
	// ErrBadCredential marks an API key that is missing or a placeholder.
	ErrBadCredential = errors.New("invalid API credential")
)

// placeholderPatterns mirror the values shipped in sample .env files; a key
// containing one was never real.
var placeholderPatterns = []string{"your_api_key", "api_key_here", "secret_key", "placeholder"}

// PlaceholderCredential reports whether key is a sample value rather than a
// real credential.
func PlaceholderCredential(key string) bool {
	k := strings.ToLower(key)
	for _, p := range placeholderPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Sync.RequestTimeoutSeconds == 0 {
		cfg.Sync.RequestTimeoutSeconds = 30
	}
	if cfg.Sync.MaxRetries == 0 {
		cfg.Sync.MaxRetries = 3
	}
	if cfg.Sync.BackoffBaseMS == 0 {
		cfg.Sync.BackoffBaseMS = 1000
	}
	if cfg.Sync.Concurrency == 0 {
		cfg.Sync.Concurrency = 1
	}
	if cfg.Sync.IntervalSeconds == 0 {
		cfg.Sync.IntervalSeconds = 3600
	}
	if cfg.Sync.LookbackDays == 0 {
		cfg.Sync.LookbackDays = 7
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Resolve per-source API keys from the named environment variables
	for i := range cfg.Sources {
		if envName := cfg.Sources[i].APIKeyEnv; envName != "" {
			if v := os.Getenv(envName); v != "" {
				cfg.Sources[i].APIKey = v
			}
		}
	}

	// Without a sources block, fall back to the conventional three-account
	// setup driven entirely by well-known environment variables.
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}

	// Per-platform base URL overrides, e.g. GOOGLE_ADS_BASE_URL pointing at
	// a local stub.
	for _, p := range domain.Platforms() {
		v := os.Getenv(strings.ToUpper(string(p)) + "_BASE_URL")
		if v == "" {
			continue
		}
		if cfg.Platforms == nil {
			cfg.Platforms = make(map[string]PlatformConfig)
		}
		pc := cfg.Platforms[string(p)]
		pc.BaseURL = v
		cfg.Platforms[string(p)] = pc
	}

	return cfg, nil
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		{
			ID:        "ds_1",
			Name:      "Google Ads Account",
			Platform:  string(domain.PlatformGoogleAds),
			AccountID: envOr("GOOGLE_ADS_ACCOUNT_ID", "123-456-7890"),
			APIKey:    os.Getenv("GOOGLE_ADS_API_KEY"),
			Active:    true,
		},
		{
			ID:        "ds_2",
			Name:      "Facebook Ads Account",
			Platform:  string(domain.PlatformFacebookAds),
			AccountID: envOr("FACEBOOK_ADS_ACCOUNT_ID", "act_9876543210"),
			APIKey:    os.Getenv("FACEBOOK_ADS_API_KEY"),
			Active:    true,
		},
		{
			ID:        "ds_3",
			Name:      "TikTok Ads Account",
			Platform:  string(domain.PlatformTikTokAds),
			AccountID: envOr("TIKTOK_ADS_ACCOUNT_ID", "tt_987654321"),
			APIKey:    os.Getenv("TIKTOK_ADS_API_KEY"),
			Active:    false,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BuildSources validates the configured sources and converts them to domain
// objects. It is all-or-nothing: one bad source fails startup rather than
// silently syncing a subset. Inactive sources may carry empty or placeholder
// keys since they are never fetched.
func (c *Config) BuildSources() ([]domain.Source, error) {
	if len(c.Sources) == 0 {
		return nil, ErrNoSources
	}

	out := make([]domain.Source, 0, len(c.Sources))
	for _, sc := range c.Sources {
		if sc.ID == "" {
			return nil, fmt.Errorf("source with platform %q: missing id", sc.Platform)
		}
		platform, err := domain.ParsePlatform(sc.Platform)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", sc.ID, err)
		}
		if sc.AccountID == "" {
			return nil, fmt.Errorf("source %s: missing account_id", sc.ID)
		}
		key := strings.TrimSpace(sc.APIKey)
		if sc.Active {
			if key == "" {
				return nil, fmt.Errorf("source %s: %w: key is empty", sc.ID, ErrBadCredential)
			}
			if PlaceholderCredential(key) {
				return nil, fmt.Errorf("source %s: %w: key looks like a placeholder", sc.ID, ErrBadCredential)
			}
		}

		name := sc.Name
		if name == "" {
			name = sc.ID
		}
		out = append(out, domain.Source{
			ID:        sc.ID,
			Name:      name,
			Platform:  platform,
			APIKey:    key,
			AccountID: sc.AccountID,
			Active:    sc.Active,
		})
	}
	return out, nil
}

// PlatformBaseURLs collects per-platform API base URL overrides, rejecting
// entries for platforms that don't exist (usually a typo in the YAML).
func (c *Config) PlatformBaseURLs() (map[domain.Platform]string, error) {
	out := make(map[domain.Platform]string, len(c.Platforms))
	for name, pc := range c.Platforms {
		if pc.BaseURL == "" {
			continue
		}
		platform, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("platforms.%s: %w", name, err)
		}
		out[platform] = pc.BaseURL
	}
	return out, nil
}
