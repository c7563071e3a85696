// Package config loads the graw command's settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the graw command.
type Config struct {
	// Reddit installed-app client ID (required)
	ClientID string `env:"REDDIT_CLIENT_ID"`

	// Redirect URL registered with the app. The authorize command listens on
	// its host and port for the callback.
	RedirectURL string `env:"REDDIT_REDIRECT_URL" envDefault:"http://localhost:5555"`

	// Refresh token from an earlier authorize run. Required for API commands.
	RefreshToken string `env:"REDDIT_REFRESH_TOKEN"`

	// User agent sent to Reddit. Empty means the library default.
	UserAgent string `env:"REDDIT_USER_AGENT"`

	// Endpoint overrides. Empty means Reddit's production endpoints.
	BaseURL      string `env:"REDDIT_BASE_URL"`
	AuthorizeURL string `env:"REDDIT_AUTHORIZE_URL"`
	TokenURL     string `env:"REDDIT_TOKEN_URL"`

	// Timeout for each HTTP request, token grants included.
	HTTPTimeout time.Duration `env:"REDDIT_HTTP_TIMEOUT" envDefault:"30s"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. It may hold a refresh token.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
// Variables already set in the environment take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID is required")
	}

	if c.RedirectURL == "" {
		return fmt.Errorf("REDDIT_REDIRECT_URL cannot be empty")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("REDDIT_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}

	return nil
}

// RequireRefreshToken reports an error naming the variable when no refresh
// token is configured.
func (c *Config) RequireRefreshToken() error {
	if c.RefreshToken == "" {
		return fmt.Errorf("REDDIT_REFRESH_TOKEN is required; run \"graw authorize\" to obtain one")
	}
	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
