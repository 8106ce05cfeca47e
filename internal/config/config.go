package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
)

// Config carries everything read from the environment at startup. Secrets are
// loaded exactly once here and passed down explicitly so services stay
// testable with fixture values.
type Config struct {
	Port         string
	AuthSecret   string
	VideoSecret  string
	DatabaseURL  string
	RedisURL     string
	CustomerCode string
	OriginBase   *url.URL

	TokenTTL        time.Duration
	UpstreamTimeout time.Duration
}

var customerCodeRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func Load() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		AuthSecret:      os.Getenv("AUTH_SECRET"),
		VideoSecret:     os.Getenv("VIDEO_TOKEN_SECRET"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		TokenTTL:        2 * time.Hour,
		UpstreamTimeout: 8 * time.Second,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is not set")
	}
	if cfg.VideoSecret == "" {
		return nil, fmt.Errorf("VIDEO_TOKEN_SECRET is not set")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	code, err := NormalizeCustomerCode(os.Getenv("STREAM_CUSTOMER_CODE"))
	if err != nil {
		return nil, err
	}
	cfg.CustomerCode = code

	base, err := url.Parse(fmt.Sprintf("https://customer-%s.cloudflarestream.com", code))
	if err != nil {
		return nil, fmt.Errorf("build origin base: %w", err)
	}
	cfg.OriginBase = base

	return cfg, nil
}

// NormalizeCustomerCode strips a single redundant "customer-" prefix and
// validates the remainder. The value arrives both with and without the prefix
// depending on who configured it; normalizing once here keeps the request
// path free of re-stripping.
func NormalizeCustomerCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	code = strings.TrimPrefix(code, "customer-")

	if code == "" {
		return "", fmt.Errorf("STREAM_CUSTOMER_CODE is not set")
	}
	if !customerCodeRe.MatchString(code) {
		return "", fmt.Errorf("STREAM_CUSTOMER_CODE %q is malformed", raw)
	}

	return code, nil
}
