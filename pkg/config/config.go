package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// AuthConfig holds the API key expected from clients.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// StorageConfig holds the object storage target and credentials.
// Bucket, Endpoint, AccessKeyID and SecretAccessKey are all required
// before any upload is attempted; validation happens in the storage
// package so the uploader fails fast on a partial configuration.
type StorageConfig struct {
	Driver          string        `env:"STORAGE_DRIVER, default=s3"`
	Bucket          string        `env:"BUCKET"`
	Endpoint        string        `env:"ENDPOINT"`
	AccessKeyID     string        `env:"ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY"`
	Region          string        `env:"REGION, default=auto"`
	KeyPrefix       string        `env:"KEY_PREFIX, default=merged"`
	PresignTTL      time.Duration `env:"PRESIGN_TTL, default=168h"`
	UniqueKeys      bool          `env:"UNIQUE_KEYS, default=false"`
	LocalDir        string        `env:"LOCAL_STORAGE_DIR, default=./uploads"`
}

// Config is the root configuration, populated once at startup and
// passed into the components. No component re-reads the environment.
type Config struct {
	Port      int    `env:"PORT, default=8080"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=json"`

	Auth    AuthConfig
	Storage StorageConfig
}

// Load populates Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// LoadWith populates Config from an arbitrary lookuper. Used by tests.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
