package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config is resolved once at startup. Values come from an optional YAML
// file (CONFIG_FILE) with environment variables taking precedence, so a
// deployment can run from env alone the way the .env file sets it up.
type Config struct {
	Port            string
	DatabasePath    string
	JWTSecret       string
	BcryptCost      int
	TokenTTL        time.Duration
	CleanupInterval time.Duration // 0 disables the background sweep
	OneSignal       OneSignalConfig
	R2              R2Config
}

type OneSignalConfig struct {
	AppID  string `yaml:"app_id"`
	APIKey string `yaml:"api_key"`
}

type R2Config struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	BucketName      string `yaml:"bucket_name"`
	PublicURL       string `yaml:"public_url"`
	Region          string `yaml:"region"`
}

type fileConfig struct {
	Port            string          `yaml:"port"`
	DatabasePath    string          `yaml:"database_path"`
	JWTSecret       string          `yaml:"jwt_secret"`
	BcryptCost      int             `yaml:"bcrypt_cost"`
	TokenTTL        string          `yaml:"token_ttl"`
	CleanupInterval string          `yaml:"cleanup_interval"`
	OneSignal       OneSignalConfig `yaml:"onesignal"`
	R2              R2Config        `yaml:"r2"`
}

// Load builds the runtime configuration. It returns an error only for a
// config file that exists but cannot be parsed; missing optional values
// fall back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         "8080",
		DatabasePath: "vibegram.db",
		BcryptCost:   bcrypt.DefaultCost,
		TokenTTL:     7 * 24 * time.Hour,
		R2:           R2Config{Region: "auto"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnv()

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.DatabasePath != "" {
		c.DatabasePath = fc.DatabasePath
	}
	if fc.JWTSecret != "" {
		c.JWTSecret = fc.JWTSecret
	}
	if fc.BcryptCost != 0 {
		c.BcryptCost = fc.BcryptCost
	}
	if fc.TokenTTL != "" {
		d, err := time.ParseDuration(fc.TokenTTL)
		if err != nil {
			return fmt.Errorf("parse token_ttl: %w", err)
		}
		c.TokenTTL = d
	}
	if fc.CleanupInterval != "" {
		d, err := time.ParseDuration(fc.CleanupInterval)
		if err != nil {
			return fmt.Errorf("parse cleanup_interval: %w", err)
		}
		c.CleanupInterval = d
	}
	if fc.OneSignal.AppID != "" {
		c.OneSignal.AppID = fc.OneSignal.AppID
	}
	if fc.OneSignal.APIKey != "" {
		c.OneSignal.APIKey = fc.OneSignal.APIKey
	}
	if fc.R2.AccountID != "" {
		c.R2 = fc.R2
		if c.R2.Region == "" {
			c.R2.Region = "auto"
		}
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = cost
		}
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		}
	}
	if v := os.Getenv("STORY_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CleanupInterval = d
		}
	}
	if v := os.Getenv("ONESIGNAL_APP_ID"); v != "" {
		c.OneSignal.AppID = v
	}
	if v := os.Getenv("ONESIGNAL_REST_API_KEY"); v != "" {
		c.OneSignal.APIKey = v
	}
	if v := os.Getenv("CLOUDFLARE_ACCOUNT_ID"); v != "" {
		c.R2.AccountID = v
	}
	if v := os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"); v != "" {
		c.R2.AccessKeyID = v
	}
	if v := os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"); v != "" {
		c.R2.SecretAccessKey = v
	}
	if v := os.Getenv("CLOUDFLARE_BUCKET_NAME"); v != "" {
		c.R2.BucketName = v
	}
	if v := os.Getenv("CLOUDFLARE_PUBLIC_URL"); v != "" {
		c.R2.PublicURL = v
	}
}
