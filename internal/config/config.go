// Package config loads catadmin configuration from defaults, an
// optional config file, and CATADMIN_* environment variables, in
// increasing order of precedence.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the admin front end.
type Config struct {
	Addr           string
	BackendURL     string
	CookieSecret   string
	RequestTimeout time.Duration
	LogFile        string
}

// Load reads configuration. path may be empty (defaults plus
// environment only). A missing cookie secret is auto-generated, which
// means browser cookies are invalidated on restart.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("backend_url", "http://localhost:3000")
	v.SetDefault("cookie_secret", "")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("CATADMIN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Addr:           v.GetString("addr"),
		BackendURL:     v.GetString("backend_url"),
		CookieSecret:   v.GetString("cookie_secret"),
		RequestTimeout: v.GetDuration("request_timeout"),
		LogFile:        v.GetString("log_file"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.CookieSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("generating cookie secret: %w", err)
		}
		cfg.CookieSecret = secret
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend_url %q is not an http(s) URL", c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// generateSecret creates a random cookie-signing secret.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
