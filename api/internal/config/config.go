package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"notes-backend/api/internal/logger"
)

var log = logger.New("config")

const DefaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// GeminiAPIKey is optional at startup: a missing key is reported on each summarize call.
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiAPIURL    string        `env:"GEMINI_API_URL"` // empty means DefaultGeminiAPIURL
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTransport string        `env:"GEMINI_TRANSPORT" envDefault:"rest"`
	HTTPTimeout     time.Duration `env:"GEMINI_HTTP_TIMEOUT" envDefault:"0s"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	DatabaseURL  string `env:"DATABASE_URL"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"10"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	WebhookURL       string `env:"WEBHOOK_URL"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse(env.Options{})
}

// Parse builds a Config from the environment described by opts.
// Tests pass opts.Environment to avoid touching the process env.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.GeminiAPIURL = strings.TrimSpace(c.GeminiAPIURL)
	if c.GeminiAPIURL == "" {
		c.GeminiAPIURL = DefaultGeminiAPIURL
	}
	c.GeminiModel = strings.TrimSpace(c.GeminiModel)
	c.GeminiTransport = strings.ToLower(strings.TrimSpace(c.GeminiTransport))
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)

	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

func (c *Config) Validate() error {
	switch c.GeminiTransport {
	case TransportREST, TransportSDK:
	default:
		return fmt.Errorf("GEMINI_TRANSPORT must be %q or %q, got %q", TransportREST, TransportSDK, c.GeminiTransport)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("GEMINI_HTTP_TIMEOUT must not be negative")
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	return nil
}

// HistoryEnabled reports whether a database is configured for summary history.
func (c *Config) HistoryEnabled() bool { return c.DatabaseURL != "" }
