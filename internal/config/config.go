// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	custom_errors "github-events-pipeline/internal/errors"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBURL      string `mapstructure:"DB_URL"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBMaxConns int32  `mapstructure:"DB_MAX_CONNS"`

	GithubToken     string        `mapstructure:"GITHUB_TOKEN"`
	GithubUserAgent string        `mapstructure:"GITHUB_USER_AGENT"`
	FeedBaseURL     string        `mapstructure:"FEED_BASE_URL"`
	FeedTimeout     time.Duration `mapstructure:"FEED_TIMEOUT"`
	IngestLimit     int           `mapstructure:"INGEST_LIMIT"`

	APIAddr        string `mapstructure:"API_ADDR"`
	PushgatewayURL string `mapstructure:"PUSHGATEWAY_URL"`
}

var defaults = map[string]any{
	"LOG_LEVEL":         "info",
	"DB_URL":            "",
	"DB_HOST":           "",
	"DB_PORT":           "5432",
	"DB_NAME":           "",
	"DB_USER":           "",
	"DB_PASSWORD":       "",
	"DB_MAX_CONNS":      4,
	"GITHUB_TOKEN":      "",
	"GITHUB_USER_AGENT": "github-events-pipeline",
	"FEED_BASE_URL":     "https://api.github.com/",
	"FEED_TIMEOUT":      "30s",
	"INGEST_LIMIT":      50,
	"API_ADDR":          ":8000",
	"PUSHGATEWAY_URL":   "",
}

// LoadConfig reads configuration from a .env file in the working directory
// (if present) and environment variables.
func LoadConfig() (*Config, error) {
	return load(".")
}

func load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv picks it up during Unmarshal.
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(path)
	_ = v.ReadInConfig() // Ignore error if file not found

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.GithubToken = strings.TrimSpace(cfg.GithubToken)
	if cfg.DBURL == "" {
		cfg.DBURL = cfg.buildDBURL()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL (or DB_HOST, DB_NAME and DB_USER) is a required configuration field")
	}
	if c.IngestLimit <= 0 {
		return &custom_errors.ErrInvalidPageLimit{Limit: c.IngestLimit}
	}
	if c.FeedTimeout <= 0 {
		return errors.New("FEED_TIMEOUT must be a positive duration")
	}
	if c.DBMaxConns <= 0 {
		return errors.New("DB_MAX_CONNS must be positive")
	}
	u, err := url.Parse(c.FeedBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FEED_BASE_URL must be an absolute URL, got %q", c.FeedBaseURL)
	}
	if !strings.HasSuffix(c.FeedBaseURL, "/") {
		c.FeedBaseURL += "/"
	}
	return nil
}

// buildDBURL assembles a connection URL from the discrete DB_* settings.
func (c *Config) buildDBURL() string {
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}
