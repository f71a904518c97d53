package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SinkFile   = "file"
	SinkMemory = "memory"
	SinkRedis  = "redis"
)

type Config struct {
	Sink       string `env:"AUDIT_SINK" envDefault:"file"`
	LogDir     string `env:"AUDIT_LOG_DIR" envDefault:"."`
	RedisURL   string `env:"AUDIT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RulesFile  string `env:"AUDIT_RULES_FILE"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	MirrorLogs bool   `env:"AUDIT_MIRROR_LOGS" envDefault:"false"`

	ServiceName string `env:"SERVICE_NAME" envDefault:"auditguard"`
}

var (
	ErrUnknownSink      = errors.New("AUDIT_SINK must be one of file, memory, redis")
	ErrMissingLogDir    = errors.New("AUDIT_LOG_DIR is required for the file sink")
	ErrMissingRedisURL  = errors.New("AUDIT_REDIS_URL is required for the redis sink")
	ErrInvalidLogFormat = errors.New("LOG_FORMAT must be json or text")
)

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkFile:
		if c.LogDir == "" {
			return ErrMissingLogDir
		}
	case SinkMemory:
	case SinkRedis:
		if c.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSink, c.Sink)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	return nil
}
