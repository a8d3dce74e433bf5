package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "lyricbot/core/config"
	coredatabase "lyricbot/core/database"
)

// State store backends.
const (
	StateBackendPostgres = "postgres"
	StateBackendRedis    = "redis"
	StateBackendMemory   = "memory"
)

// ChannelConfig identifies where tracks are published.
type ChannelConfig struct {
	// Target is the recipient passed to sendAudio: a numeric chat id
	// (e.g. -1001234567890) or a public @username.
	Target string `yaml:"target" envconfig:"CHANNEL_TARGET"`
	// PublicUsername, when set, is preferred for building post links.
	PublicUsername string `yaml:"public_username" envconfig:"CHANNEL_PUBLIC_USERNAME"`
}

// RedisConfig holds connection settings for the Redis state backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// StateConfig selects where pending conversations are kept.
type StateConfig struct {
	Backend string      `yaml:"backend" envconfig:"STATE_BACKEND"`
	Redis   RedisConfig `yaml:"redis"`
}

// Config aggregates core settings with the bot's own.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Channel  ChannelConfig       `yaml:"channel"`
	State    StateConfig         `yaml:"state"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	cfg.Channel.Target = strings.TrimSpace(cfg.Channel.Target)
	cfg.Channel.PublicUsername = strings.TrimPrefix(strings.TrimSpace(cfg.Channel.PublicUsername), "@")

	backend := strings.ToLower(strings.TrimSpace(cfg.State.Backend))
	if backend == "" {
		backend = StateBackendPostgres
	}
	switch backend {
	case StateBackendPostgres, StateBackendMemory:
	case StateBackendRedis:
		if strings.TrimSpace(cfg.State.Redis.Addr) == "" {
			return fmt.Errorf("state.redis.addr is required when state.backend is 'redis'")
		}
	default:
		return fmt.Errorf("invalid state.backend %q; allowed: postgres, redis, memory", cfg.State.Backend)
	}
	cfg.State.Backend = backend

	if len(cfg.Core.Telegram.AdminIDs) == 0 {
		return fmt.Errorf("telegram.admin_ids must list at least one admin")
	}
	return nil
}
