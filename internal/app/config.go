// Package app wires configuration, logging, middleware and the HTTP
// router around the entity stores.
package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":3000"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// DataDir roots the JSON files backing every entity store.
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// APIKeysPath points at the key file; when the file is absent the
	// bootstrap admin key is the only caller.
	APIKeysPath  string `envconfig:"API_KEYS_PATH" default:"./data/api_keys.json"`
	AdminAPIKey  string `envconfig:"ADMIN_API_KEY" default:"a1b2c3d4e5"`
	APIKeyHeader string `envconfig:"API_KEY_HEADER" default:"API_KEY"`

	RedisAddr   string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	APIKeyTTL   time.Duration `envconfig:"API_KEY_CACHE_TTL" default:"5m"`
	RedisEnable bool          `envconfig:"REDIS_ENABLE" default:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
