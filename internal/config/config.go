// Package config provides Viper-based configuration management for the
// curator CLI and its pipeline stages.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete curator configuration.
type Config struct {
	Database       DatabaseConfig  `mapstructure:"database"`
	Scorer         ScorerConfig    `mapstructure:"scorer"`
	Fetch          FetchConfig     `mapstructure:"fetch"`
	RateLimit      RateLimitConfig `mapstructure:"ratelimit"`
	Pipeline       PipelineConfig  `mapstructure:"pipeline"`
	Artifact       ArtifactConfig  `mapstructure:"artifact"`
	Reconcile      ReconcileConfig `mapstructure:"reconcile"`
	DLQ            DLQConfig       `mapstructure:"dlq"`
	Git            GitConfig       `mapstructure:"git"`
	Logging        LoggingConfig   `mapstructure:"logging"`
	Output         OutputConfig    `mapstructure:"output"`
	CategoriesFile string          `mapstructure:"categories_file"`
}

// DatabaseConfig contains Postgres connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// DSN renders the keyword/value connection string pgx expects.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// ScorerConfig contains settings for the model endpoint that scores items.
type ScorerConfig struct {
	Host             string        `mapstructure:"host"`
	APIPath          string        `mapstructure:"api_path"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	NumPredict       int           `mapstructure:"num_predict"`
	NumCtx           int           `mapstructure:"num_ctx"`
	Temperature      float64       `mapstructure:"temperature"`
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
}

// FetchConfig contains settings for pulling source feeds and pages.
type FetchConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	EnrichContent bool          `mapstructure:"enrich_content"`
	MinBodyWords  int           `mapstructure:"min_body_words"`
}

// RateLimitConfig paces outbound requests per remote host.
type RateLimitConfig struct {
	HostIntervals map[string]time.Duration `mapstructure:"host_intervals"`
	Interval      time.Duration            `mapstructure:"interval"`
	Burst         int                      `mapstructure:"burst"`
}

// PipelineConfig contains batch processing settings.
type PipelineConfig struct {
	Workers             int `mapstructure:"workers"`
	BatchSize           int `mapstructure:"batch_size"`
	MaxClassifyAttempts int `mapstructure:"max_classify_attempts"`
}

// ArtifactConfig contains settings for the published feed files.
type ArtifactConfig struct {
	RetentionCap int `mapstructure:"retention_cap"`
}

// ReconcileConfig contains settings for store/artifact reconciliation.
type ReconcileConfig struct {
	Window time.Duration `mapstructure:"window"`
}

// DLQConfig controls dead letter records for exhausted items.
type DLQConfig struct {
	BasePath  string        `mapstructure:"base_path"`
	Retention time.Duration `mapstructure:"retention"`
	Enabled   bool          `mapstructure:"enabled"`
}

// GitConfig controls committing published artifacts to version control.
type GitConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Remote  string `mapstructure:"remote"`
	Branch  string `mapstructure:"branch"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains terminal output settings.
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".curator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/curator")
	}

	v.SetEnvPrefix("CURATOR")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "curator")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "curator")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("scorer.host", "http://localhost:11434")
	v.SetDefault("scorer.api_path", "/api/generate")
	v.SetDefault("scorer.model", "gemma3:4b")
	v.SetDefault("scorer.timeout", "60s")
	v.SetDefault("scorer.num_predict", 500)
	v.SetDefault("scorer.num_ctx", 8192)
	v.SetDefault("scorer.temperature", 0.0)
	v.SetDefault("scorer.breaker_threshold", 5)
	v.SetDefault("scorer.breaker_cooldown", "30s")

	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.user_agent", "feed-curator/1.0")
	v.SetDefault("fetch.enrich_content", false)
	v.SetDefault("fetch.min_body_words", 50)

	v.SetDefault("ratelimit.interval", "5s")
	v.SetDefault("ratelimit.burst", 3)

	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.batch_size", 40)
	v.SetDefault("pipeline.max_classify_attempts", 3)

	v.SetDefault("artifact.retention_cap", 100)

	v.SetDefault("reconcile.window", "24h")

	v.SetDefault("dlq.enabled", true)
	v.SetDefault("dlq.base_path", "dead_letters")
	v.SetDefault("dlq.retention", "720h")

	v.SetDefault("git.enabled", false)
	v.SetDefault("git.remote", "origin")
	v.SetDefault("git.branch", "main")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)

	v.SetDefault("categories_file", "categories.yml")
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	if cfg.Scorer.Host == "" {
		return fmt.Errorf("scorer.host must not be empty")
	}

	if cfg.Scorer.BreakerThreshold < 1 {
		return fmt.Errorf("scorer.breaker_threshold must be at least 1, got %d", cfg.Scorer.BreakerThreshold)
	}

	if cfg.Scorer.BreakerCooldown <= 0 {
		return fmt.Errorf("scorer.breaker_cooldown must be positive, got %s", cfg.Scorer.BreakerCooldown)
	}

	if cfg.Fetch.MinBodyWords < 0 {
		return fmt.Errorf("fetch.min_body_words must not be negative, got %d", cfg.Fetch.MinBodyWords)
	}

	if cfg.RateLimit.Interval <= 0 {
		return fmt.Errorf("ratelimit.interval must be positive, got %s", cfg.RateLimit.Interval)
	}

	if cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("ratelimit.burst must be at least 1, got %d", cfg.RateLimit.Burst)
	}

	if cfg.DLQ.Enabled && cfg.DLQ.BasePath == "" {
		return fmt.Errorf("dlq.base_path must not be empty when dlq is enabled")
	}

	if cfg.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1, got %d", cfg.Pipeline.Workers)
	}

	if cfg.Pipeline.BatchSize < 1 {
		return fmt.Errorf("pipeline.batch_size must be at least 1, got %d", cfg.Pipeline.BatchSize)
	}

	if cfg.Pipeline.MaxClassifyAttempts < 1 {
		return fmt.Errorf("pipeline.max_classify_attempts must be at least 1, got %d", cfg.Pipeline.MaxClassifyAttempts)
	}

	if cfg.Artifact.RetentionCap < 1 {
		return fmt.Errorf("artifact.retention_cap must be at least 1, got %d", cfg.Artifact.RetentionCap)
	}

	if cfg.Reconcile.Window <= 0 {
		return fmt.Errorf("reconcile.window must be positive, got %s", cfg.Reconcile.Window)
	}

	if cfg.CategoriesFile == "" {
		return fmt.Errorf("categories_file must not be empty")
	}

	return nil
}
