package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Resolution and write-pipeline modes. The defaults reproduce the documented
// catalog contract; the strict/transactional variants are opt-in.
const (
	ResolutionFirstMatch = "first-match"
	ResolutionStrict     = "strict"

	WriteModeBestEffort    = "best-effort"
	WriteModeTransactional = "transactional"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"simcat"`
	DBUser     string `envconfig:"DB_USER" default:"simcat"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string        `envconfig:"SECRET_KEY" required:"true"`
	JWTTTL    time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"30m"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	AttrResolution   string `envconfig:"ATTR_RESOLUTION" default:"first-match"`
	ProductWriteMode string `envconfig:"PRODUCT_WRITE_MODE" default:"best-effort"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("signing secret must be provided")
	}
	switch cfg.AttrResolution {
	case ResolutionFirstMatch, ResolutionStrict:
	default:
		return nil, fmt.Errorf("unknown ATTR_RESOLUTION %q", cfg.AttrResolution)
	}
	switch cfg.ProductWriteMode {
	case WriteModeBestEffort, WriteModeTransactional:
	default:
		return nil, fmt.Errorf("unknown PRODUCT_WRITE_MODE %q", cfg.ProductWriteMode)
	}
	return &cfg, nil
}

// DSN composes the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
