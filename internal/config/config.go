// Package config provides unified configuration loading for the matching engine.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the matching engine.
type Config struct {
	Stores        StoresConfig        `yaml:"stores"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// StoresConfig holds the file paths of the persisted learning stores.
type StoresConfig struct {
	DataDir         string `yaml:"data_dir"`
	LearnedMappings string `yaml:"learned_mappings"`
	Decisions       string `yaml:"decisions"`
	Patterns        string `yaml:"patterns"`
}

// ScoringConfig holds match scoring weights and classification thresholds.
type ScoringConfig struct {
	SemanticWeight  float64 `yaml:"semantic_weight"`
	AttributeWeight float64 `yaml:"attribute_weight"`

	// Attribute sub-weights. The default 0.5/0.35/0.15 split scores brand,
	// size and category; setting category_weight to 0 with 0.6/0.4 for the
	// others reproduces the baseline two-term scorer.
	BrandWeight    float64 `yaml:"brand_weight"`
	SizeWeight     float64 `yaml:"size_weight"`
	CategoryWeight float64 `yaml:"category_weight"`

	AutoConfirmThreshold float64 `yaml:"auto_confirm_threshold"`
	ReviewThreshold      float64 `yaml:"review_threshold"`
}

// EmbeddingConfig holds embedding provider client settings.
type EmbeddingConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	Dimension int           `yaml:"dimension"`
	Timeout   time.Duration `yaml:"timeout"`
}

// CacheConfig holds embedding vector cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json or console
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Stores: StoresConfig{
			DataDir:         "data",
			LearnedMappings: "learned_mappings.json",
			Decisions:       "hitl_decisions.json",
			Patterns:        "learned_patterns.json",
		},
		Scoring: ScoringConfig{
			SemanticWeight:       0.70,
			AttributeWeight:      0.30,
			BrandWeight:          0.50,
			SizeWeight:           0.35,
			CategoryWeight:       0.15,
			AutoConfirmThreshold: 0.90,
			ReviewThreshold:      0.60,
		},
		Embedding: EmbeddingConfig{
			Model:     "all-MiniLM-L6-v2",
			Dimension: 384,
			Timeout:   30 * time.Second,
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// applyEnvOverrides applies MATCHER_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MATCHER_DATA_DIR"); v != "" {
		cfg.Stores.DataDir = v
	}
	if v := os.Getenv("MATCHER_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("MATCHER_LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("MATCHER_EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("MATCHER_EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("MATCHER_CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("MATCHER_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("MATCHER_AUTO_CONFIRM_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.AutoConfirmThreshold = f
		}
	}
	if v := os.Getenv("MATCHER_REVIEW_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.ReviewThreshold = f
		}
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Scoring.SemanticWeight < 0 || c.Scoring.SemanticWeight > 1 {
		return fmt.Errorf("scoring.semantic_weight must be in [0,1], got %v", c.Scoring.SemanticWeight)
	}
	if c.Scoring.AttributeWeight < 0 || c.Scoring.AttributeWeight > 1 {
		return fmt.Errorf("scoring.attribute_weight must be in [0,1], got %v", c.Scoring.AttributeWeight)
	}
	if c.Scoring.AutoConfirmThreshold < c.Scoring.ReviewThreshold {
		return fmt.Errorf("scoring.auto_confirm_threshold (%v) must not be below scoring.review_threshold (%v)",
			c.Scoring.AutoConfirmThreshold, c.Scoring.ReviewThreshold)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("cache.driver must be memory or redis, got %q", c.Cache.Driver)
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", c.Embedding.Dimension)
	}
	return nil
}
