package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/fabiansimon/Frello/internal/constants"
)

const (
	EnvModeDevelopment = "development"
	EnvModeProduction  = "production"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	EnvMode  string `env:"ENV_MODE"  env-default:"development"`
	HTTPAddr string `env:"HTTP_ADDR" env-default:":4000"`

	DBDriver    string `env:"DB_DRIVER"    env-default:"postgres"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"host=localhost user=frello password=frello dbname=frello port=5432 sslmode=disable"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel         string `env:"OPENAI_MODEL"           env-default:"gpt-4"`
	AIRequestsPerMinute int    `env:"AI_REQUESTS_PER_MINUTE" env-default:"30"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     env-default:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM"    env-default:"Frello <no-reply@frello.app>"`
	DomainBase   string `env:"DOMAIN_BASE"   env-default:"http://localhost:5173"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = constants.DefaultTokenTTL
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.EnvMode {
	case EnvModeDevelopment, EnvModeProduction:
	default:
		return fmt.Errorf("ENV_MODE is invalid: %q", c.EnvMode)
	}

	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER is invalid: %q", c.DBDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.AIRequestsPerMinute <= 0 {
		return fmt.Errorf("AI_REQUESTS_PER_MINUTE must be positive, got %d", c.AIRequestsPerMinute)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.EnvMode == EnvModeProduction
}

// AIEnabled reports whether an LLM key was configured.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// SMTPEnabled reports whether outbound email can be delivered.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}
