package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Alert    AlertConfig
	AI       AIConfig
	Stock    StockConfig
}

// AppConfig holds HTTP server related options.
type AppConfig struct {
	Env          string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AlertConfig controls the scheduled low-stock digest.
type AlertConfig struct {
	Enabled    bool
	Cron       string
	WebhookURL string
}

// AIConfig holds settings for the optional LLM explainer.
type AIConfig struct {
	APIKey string
	APIURL string
	Model  string
}

// StockConfig holds stock defaults.
type StockConfig struct {
	DefaultMinQuantity int
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine when the environment is already populated
		_ = godotenv.Load()
	}

	p := &parser{}
	env := getenvWithDefault("APP_ENV", "development")
	defaultFormat := "console"
	if env == "production" {
		defaultFormat = "json"
	}

	cfg := &Config{
		App: AppConfig{
			Env:          env,
			Port:         getenvWithDefault("APP_PORT", "8080"),
			ReadTimeout:  p.duration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: p.duration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			CORSOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    p.integer("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    p.integer("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: p.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     p.boolean("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getenvWithDefault("JWT_ISSUER", "glassshop"),
			TTL:    p.duration("JWT_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", defaultFormat),
		},
		Alert: AlertConfig{
			Enabled:    p.boolean("ALERT_ENABLED", true),
			Cron:       getenvWithDefault("ALERT_CRON", "0 9 * * *"),
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
		AI: AIConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			APIURL: getenvWithDefault("AI_API_URL", "https://api.anthropic.com/v1/messages"),
			Model:  getenvWithDefault("AI_MODEL", "claude-3-haiku-20240307"),
		},
		Stock: StockConfig{
			DefaultMinQuantity: p.integer("STOCK_DEFAULT_MIN_QUANTITY", 5),
		},
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch {
	case c.App.Port == "":
		return errors.New("APP_PORT must be provided")
	case c.Database.URL == "":
		return errors.New("DATABASE_URL must be provided")
	case c.JWT.Secret == "":
		return errors.New("JWT_SECRET must be provided")
	case len(c.JWT.Secret) < 16:
		return errors.New("JWT_SECRET must be at least 16 characters")
	case c.JWT.TTL <= 0:
		return errors.New("JWT_TTL must be positive")
	}
	if c.Database.MaxOpenConns < 1 {
		return errors.New("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Alert.Enabled && c.Alert.Cron == "" {
		return errors.New("ALERT_CRON must be provided when alerts are enabled")
	}
	if c.Stock.DefaultMinQuantity < 0 {
		return errors.New("STOCK_DEFAULT_MIN_QUANTITY must not be negative")
	}
	return nil
}

// parser keeps the first conversion error so Load can report it once.
type parser struct{ err error }

func (p *parser) integer(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) boolean(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return fallback
	}
	return v
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
