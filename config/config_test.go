package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("FileWithDefaults", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "slot:\n  backend: memory\n"))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Slot.Backend)
		assert.Equal(t, "ee_submissions_v1", cfg.Slot.Key)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "submission-events", cfg.Kafka.Topic)
		assert.False(t, cfg.EventsEnabled())
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "slot:\n  backend: memory\n"))
		t.Setenv("SLOT_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, BackendRedis, cfg.Slot.Backend)
		assert.Equal(t, "cache:6379", cfg.Redis.Addr)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.True(t, cfg.EventsEnabled())
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("EnvOnly", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		t.Setenv("SLOT_BACKEND", "file")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, BackendFile, cfg.Slot.Backend)
		assert.Equal(t, "data", cfg.Slot.Dir)
	})
}

func TestValidateConfig(t *testing.T) {
	base := func() Config {
		return Config{Slot: SlotConfig{Backend: BackendFile, Key: "k", Dir: "data"}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"File", func(*Config) {}, false},
		{"UnknownBackend", func(c *Config) { c.Slot.Backend = "localstorage" }, true},
		{"EmptyKey", func(c *Config) { c.Slot.Key = "" }, true},
		{"RedisWithoutAddr", func(c *Config) { c.Slot.Backend = BackendRedis }, true},
		{"PostgresWithoutURL", func(c *Config) { c.Slot.Backend = BackendPostgres }, true},
		{"PostgresWithURL", func(c *Config) {
			c.Slot.Backend = BackendPostgres
			c.Postgres.URL = "postgres://localhost/db"
		}, false},
		{"S3WithoutBucket", func(c *Config) { c.Slot.Backend = BackendS3 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := validateConfig(&cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
