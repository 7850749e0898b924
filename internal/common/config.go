package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Catalog     CatalogConfig `toml:"catalog"`
	Cache       CacheConfig   `toml:"cache"`
	Search      SearchConfig  `toml:"search"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// CatalogConfig configures the remote API-documentation platform client.
type CatalogConfig struct {
	BaseURL   string `toml:"base_url"`   // Remote service base URL, e.g. "https://yapi.example.com"
	Tokens    string `toml:"tokens"`     // Credential string: "id:token[,id:token...]", bare entry = default token
	Timeout   string `toml:"timeout"`    // HTTP timeout as duration string (default: "30s")
	RateLimit int    `toml:"rate_limit"` // Requests per second against the remote service
}

// CacheConfig configures the metadata cache lifecycle.
type CacheConfig struct {
	TTLMinutes      int    `toml:"ttl_minutes"`      // Snapshot validity window in minutes
	RefreshSchedule string `toml:"refresh_schedule"` // Optional cron expression for background refresh (empty = disabled)
}

// SearchConfig contains configuration for search behavior
type SearchConfig struct {
	DefaultLimit int `toml:"default_limit"` // Page size when the caller gives none (default: 20)
	MaxProjects  int `toml:"max_projects"`  // Candidate projects scanned per search (default: 5)
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in apidex.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Catalog: CatalogConfig{
			Timeout:   "30s",
			RateLimit: 10,
		},
		Cache: CacheConfig{
			TTLMinutes: 10,
		},
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxProjects:  5,
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// A missing path falls back to defaults plus environment overrides.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("APIDEX_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if badgerPath := os.Getenv("APIDEX_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("APIDEX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if baseURL := os.Getenv("APIDEX_YAPI_BASE_URL"); baseURL != "" {
		config.Catalog.BaseURL = baseURL
	}
	if tokens := os.Getenv("APIDEX_YAPI_TOKENS"); tokens != "" {
		config.Catalog.Tokens = tokens
	}

	if ttl := os.Getenv("APIDEX_CACHE_TTL_MINUTES"); ttl != "" {
		if minutes, err := strconv.Atoi(ttl); err == nil {
			config.Cache.TTLMinutes = minutes
		}
	}
	if schedule := os.Getenv("APIDEX_CACHE_REFRESH_SCHEDULE"); schedule != "" {
		config.Cache.RefreshSchedule = schedule
	}
}
