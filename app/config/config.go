// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned when SECRET_KEY is not set.
var ErrMissingSecret = errors.New("SECRET_KEY is required")

// Config holds the server settings.
type Config struct {
	SecretKey    string
	Addr         string
	DatabasePath string
	SessionPath  string
	SessionTTL   time.Duration
	AdminID      int
	MetricsAddr  string
	LogLevel     string
	LoginRate    float64
	LoginBurst   int
	SecureCookie bool
}

// LoadDefaults returns the built-in settings. SecretKey is left empty.
func LoadDefaults() *Config {
	return &Config{
		Addr:         ":8080",
		DatabasePath: "data/blog.db",
		SessionPath:  "data/sessions",
		SessionTTL:   720 * time.Hour,
		AdminID:      1,
		LogLevel:     "info",
		LoginRate:    5,
		LoginBurst:   10,
	}
}

// Load reads envFile (if it exists) into the environment and overlays the
// environment on the defaults. It does not check the secret; see Validate.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env (%s): %w", envFile, err)
		}
	}

	cfg := LoadDefaults()
	cfg.SecretKey = os.Getenv("SECRET_KEY")
	setString(&cfg.Addr, "ADDR")
	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.SessionPath, "SESSION_PATH")
	setString(&cfg.MetricsAddr, "METRICS_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_ID: %w", err)
		}
		cfg.AdminID = id
	}
	if v := os.Getenv("LOGIN_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_RATE: %w", err)
		}
		cfg.LoginRate = rate
	}
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_BURST: %w", err)
		}
		cfg.LoginBurst = burst
	}
	if v := os.Getenv("SECURE_COOKIE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIE: %w", err)
		}
		cfg.SecureCookie = secure
	}

	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.AdminID <= 0 {
		return errors.New("admin id must be positive")
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate and burst must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
