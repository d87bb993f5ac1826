// Package config reads process configuration from the environment, an
// optional config file and .env files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/uhudbuilders/sitecms/internal/upload"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Upload    UploadConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	// CORSAllowedOrigins is empty when the admin panel is served same-origin.
	CORSAllowedOrigins []string
	// SiteDistDir holds the built single-page app; empty disables the fallback.
	SiteDistDir string
	DevMode     bool
}

type DatabaseConfig struct {
	Driver string
	URL    string
	Debug  bool
}

type UploadConfig struct {
	Dir          string
	MaxBytes     int64
	AllowedTypes []string
	// Timeout bounds reading one upload body.
	Timeout time.Duration
}

type SessionConfig struct {
	Secret string
	Secure bool
}

type RateLimitConfig struct {
	// Rates use the limiter format, "10-M" = 10 per minute. Empty disables.
	Contact string
	Login   string
}

type LogConfig struct {
	Level string
}

// LoadDotEnv loads .env and then .env.production from the working
// directory. Variables already set are never overridden, so .env wins.
func LoadDotEnv() {
	for _, f := range []string{".env", ".env.production"} {
		_ = godotenv.Load(f)
	}
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", p, err)
		}
	}

	v.SetDefault("PORT", "3001")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "file:sitecms.db?_foreign_keys=on")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", upload.DefaultMaxBytes)
	v.SetDefault("UPLOAD_ALLOWED_TYPES", strings.Join(upload.DefaultAllowedTypes, ","))
	v.SetDefault("UPLOAD_TIMEOUT", "2m")
	v.SetDefault("RATE_LIMIT_CONTACT", "10-M")
	v.SetDefault("RATE_LIMIT_LOGIN", "5-M")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			SiteDistDir:        v.GetString("SITE_DIST_DIR"),
			DevMode:            v.GetBool("DEV_MODE"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			URL:    v.GetString("DATABASE_URL"),
			Debug:  v.GetBool("DATABASE_DEBUG"),
		},
		Upload: UploadConfig{
			Dir:          v.GetString("UPLOAD_DIR"),
			MaxBytes:     v.GetInt64("UPLOAD_MAX_BYTES"),
			AllowedTypes: splitList(v.GetString("UPLOAD_ALLOWED_TYPES")),
			Timeout:      v.GetDuration("UPLOAD_TIMEOUT"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			Secure: v.GetBool("SESSION_SECURE"),
		},
		RateLimit: RateLimitConfig{
			Contact: v.GetString("RATE_LIMIT_CONTACT"),
			Login:   v.GetString("RATE_LIMIT_LOGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = upload.DefaultMaxBytes
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Server.Port, ":") {
		return c.Server.Port
	}
	return ":" + c.Server.Port
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
