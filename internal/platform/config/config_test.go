package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "applicant.submissions", cfg.SubmissionKafkaTopic)
	assert.Equal(t, 3, cfg.SubmissionBreakerThreshold)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("SUBMISSION_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("SUBMISSION_BREAKER_THRESHOLD", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 7, cfg.SubmissionBreakerThreshold)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad log format":       {"LOG_FORMAT", "xml"},
		"zero idle ttl":        {"SESSION_IDLE_TTL", "0s"},
		"negative sweep":       {"SESSION_SWEEP_INTERVAL", "-1s"},
		"unparseable duration": {"SHUTDOWN_TIMEOUT", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("values are read from the working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_ADDR=:7070\nLOG_FORMAT=text\n"), 0o600))
		t.Chdir(dir)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.HTTPAddr)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_ADDR=:7070\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("HTTP_ADDR", ":9090")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.HTTPAddr)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
	})

	t.Run("unreadable file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
		t.Chdir(dir)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading .env")
	})
}
