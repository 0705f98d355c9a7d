package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

type Config struct {
	LogLevel string         `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Slot     SlotConfig     `yaml:"slot"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

type SlotConfig struct {
	Backend string `yaml:"backend" env:"SLOT_BACKEND" env-default:"file"`
	Key     string `yaml:"key" env:"SLOT_KEY" env-default:"ee_submissions_v1"`
	Dir     string `yaml:"dir" env:"SLOT_DIR" env-default:"data"`
}

type PostgresConfig struct {
	URL            string `yaml:"url" env:"POSTGRES_URL"`
	MaxConn        int32  `yaml:"max_conn" env:"POSTGRES_MAX_CONN" env-default:"5"`
	MinConn        int32  `yaml:"min_conn" env:"POSTGRES_MIN_CONN" env-default:"1"`
	AutoMigrate    bool   `yaml:"auto_migrate" env:"POSTGRES_AUTO_MIGRATE" env-default:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"POSTGRES_MIGRATIONS_PATH" env-default:"migrations"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"` //nolint:gosec // config struct, not hardcoded cred
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"` //nolint:gosec // config struct, not hardcoded cred
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	Prefix          string `yaml:"prefix" env:"S3_PREFIX"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"submission-events"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"evaluator-events"`
}

// Load reads the YAML file named by CONFIG_PATH (or config/config.yaml when
// present) and applies environment overrides. Without a file only the
// environment is used.
func Load() (*Config, error) {
	var cfg Config

	path := getConfigPath()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || os.Getenv("CONFIG_PATH") != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/config.yaml"
}

func validateConfig(cfg *Config) error {
	if cfg.Slot.Key == "" {
		return fmt.Errorf("slot key must be set")
	}

	switch cfg.Slot.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.Slot.Dir == "" {
			return fmt.Errorf("slot dir must be set for the file backend")
		}
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis addr must be set for the redis backend")
		}
	case BackendPostgres:
		if cfg.Postgres.URL == "" {
			return fmt.Errorf("postgres url must be set for the postgres backend")
		}
	case BackendS3:
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket must be set for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown slot backend %q", cfg.Slot.Backend)
	}

	return nil
}

func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
