package main

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the flexdash server configuration, read from the environment
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	HubURL         string        `envconfig:"FLEX_HUB_URL" required:"true"`
	HubTimeout     time.Duration `envconfig:"FLEX_HUB_TIMEOUT" default:"30s"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"INFO"`
	LogJSON        bool          `envconfig:"LOG_JSON" default:"false"`
	TracingEnabled bool          `envconfig:"TRACING_ENABLED" default:"false"`
	OTLPEndpoint   string        `envconfig:"OTLP_ENDPOINT" default:"localhost:4318"`
	RateLimitRPS   float64       `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
	TLSCertFile    string        `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile     string        `envconfig:"TLS_KEY_FILE"`
	HubCAFile      string        `envconfig:"FLEX_HUB_CA_FILE"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(dotenv ...string) (*Config, bool, error) {
	loaded := godotenv.Load(dotenv...) == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, loaded, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, loaded, err
	}
	return &cfg, loaded, nil
}

// Validate checks values envconfig cannot
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.HubURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "  FLEX_HUB_URL must be an absolute URL such as http://localhost:7111")
	}
	if c.HubTimeout < 0 {
		problems = append(problems, "  FLEX_HUB_TIMEOUT must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		problems = append(problems, "  RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst == 0 {
		problems = append(problems, "  RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		problems = append(problems, "  TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.TracingEnabled && c.OTLPEndpoint == "" {
		problems = append(problems, "  OTLP_ENDPOINT is required when TRACING_ENABLED is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("environment validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// RateLimited reports whether per-client rate limiting is on. RATE_LIMIT_RPS=0 disables it.
func (c *Config) RateLimited() bool {
	return c.RateLimitRPS > 0
}

// TLSEnabled reports whether the dashboard serves HTTPS
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != ""
}
