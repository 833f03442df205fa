package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port          int
	DSN           string
	SessionSecret string

	GoogleKey      string
	GoogleSecret   string
	GoogleCallback string

	// Object storage is optional; when AccountID is empty the picture
	// upload route is not registered.
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (Config, error) {
	// A missing .env is fine in production; env vars take over.
	_ = godotenv.Load()

	cfg := Config{
		Port:            3000,
		DSN:             strings.TrimSpace(os.Getenv("DSN")),
		SessionSecret:   strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		GoogleKey:       strings.TrimSpace(os.Getenv("GOOGLE_KEY")),
		GoogleSecret:    strings.TrimSpace(os.Getenv("GOOGLE_SECRET")),
		GoogleCallback:  strings.TrimSpace(os.Getenv("GOOGLE_CALLBACK_URL")),
		AccountID:       strings.TrimSpace(os.Getenv("ACCOUNT_ID")),
		AccessKeyID:     strings.TrimSpace(os.Getenv("ACCESS_KEY_ID")),
		AccessKeySecret: strings.TrimSpace(os.Getenv("ACCESS_KEY_SECRET")),
		BucketName:      strings.TrimSpace(os.Getenv("BUCKET_NAME")),
		PublicURL:       strings.TrimSpace(os.Getenv("PUBLIC_URL")),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if cfg.DSN == "" {
		return cfg, fmt.Errorf("DSN is required")
	}
	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.GoogleKey == "" || cfg.GoogleSecret == "" {
		return cfg, fmt.Errorf("GOOGLE_KEY and GOOGLE_SECRET are required")
	}
	if cfg.GoogleCallback == "" {
		cfg.GoogleCallback = fmt.Sprintf("http://localhost:%d/oauth/callback", cfg.Port)
	}

	return cfg, nil
}

// StorageEnabled reports whether object storage credentials are set.
func (c Config) StorageEnabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.AccessKeySecret != "" && c.BucketName != ""
}
