// Package config loads server configuration from the environment and an
// optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	platformstrings "insurtech/pkg/platform/strings"
)

// Config holds application configuration.
type Config struct {
	// HTTPAddr is the listen address of the API server.
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is json or text.
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// SessionIdleTTL is how long an untouched form session is kept.
	SessionIdleTTL time.Duration `mapstructure:"SESSION_IDLE_TTL"`
	// SessionSweepInterval is how often idle sessions are removed.
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`

	// SubmissionKafkaBrokers is a comma-separated broker list. Empty keeps
	// submissions on the log sink.
	SubmissionKafkaBrokers string `mapstructure:"SUBMISSION_KAFKA_BROKERS"`
	SubmissionKafkaTopic   string `mapstructure:"SUBMISSION_KAFKA_TOPIC"`
	// SubmissionBreakerThreshold is the consecutive Kafka failures after
	// which submissions fall back to the log sink.
	SubmissionBreakerThreshold int `mapstructure:"SUBMISSION_BREAKER_THRESHOLD"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads .env (if present), then the environment. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")
	v.SetDefault("SUBMISSION_KAFKA_BROKERS", "")
	v.SetDefault("SUBMISSION_KAFKA_TOPIC", "applicant.submissions")
	v.SetDefault("SUBMISSION_BREAKER_THRESHOLD", 3)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func missingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("config: SESSION_IDLE_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return errors.New("config: SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.KafkaEnabled() && c.SubmissionKafkaTopic == "" {
		return errors.New("config: SUBMISSION_KAFKA_TOPIC must be set when brokers are configured")
	}
	if c.SubmissionBreakerThreshold <= 0 {
		c.SubmissionBreakerThreshold = 3
	}
	return nil
}

// KafkaBrokers returns the parsed broker list.
func (c *Config) KafkaBrokers() []string {
	return platformstrings.SplitList(c.SubmissionKafkaBrokers)
}

// KafkaEnabled reports whether submissions go to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers()) > 0
}
