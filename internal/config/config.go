package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Node identifier recorded on sessions started without an explicit one.
	DefaultNode string `env:"DEFAULT_NODE" envDefault:"esp32-01"`

	// MQTT ingest bridge; empty broker URL disables it.
	MQTTBrokerURL   string `env:"MQTT_BROKER_URL" envDefault:""`
	MQTTClientID    string `env:"MQTT_CLIENT_ID" envDefault:"scanmap-server"`
	MQTTUsername    string `env:"MQTT_USERNAME" envDefault:""`
	MQTTPassword    string `env:"MQTT_PASSWORD" envDefault:""`
	MQTTIngestTopic string `env:"MQTT_INGEST_TOPIC" envDefault:"scanmap/ingest"`

	// Ingest rate limit per client IP per minute; 0 disables.
	IngestRateLimitPerMin int `env:"INGEST_RATE_LIMIT_PER_MIN" envDefault:"120"`

	// Sessions active longer than this are auto-stopped by the background
	// job; 0 disables.
	SessionMaxAgeMinutes int `env:"SESSION_MAX_AGE_MINUTES" envDefault:"0"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.SessionMaxAgeMinutes) * time.Minute
}

func (c *Config) Validate() error {
	if c.IngestRateLimitPerMin < 0 {
		return fmt.Errorf("INGEST_RATE_LIMIT_PER_MIN must not be negative")
	}
	if c.SessionMaxAgeMinutes < 0 {
		return fmt.Errorf("SESSION_MAX_AGE_MINUTES must not be negative")
	}
	if c.MQTTBrokerURL != "" && c.MQTTIngestTopic == "" {
		return fmt.Errorf("MQTT_INGEST_TOPIC must be set when MQTT_BROKER_URL is set")
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
