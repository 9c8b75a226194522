package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port               string `yaml:"port"`
		CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
		Migrate  bool   `yaml:"migrate"`
	} `yaml:"mongo"`

	Redis struct {
		Addr       string        `yaml:"addr"`
		Password   string        `yaml:"password"`
		DB         int           `yaml:"db"`
		SessionTTL time.Duration `yaml:"session_ttl"`
	} `yaml:"redis"`

	Auth struct {
		AdminPassword       string        `yaml:"admin_password"`
		AdminPasswordBcrypt string        `yaml:"admin_password_bcrypt"`
		JWTSecret           string        `yaml:"jwt_secret"`
		TokenTTL            time.Duration `yaml:"token_ttl"`
		SecureCookie        bool          `yaml:"secure_cookie"`
	} `yaml:"auth"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Load reads the YAML file at path when one is given, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Mongo.Migrate = true

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	// Secrets in the file may reference the environment
	c.Mongo.URI = os.ExpandEnv(c.Mongo.URI)
	c.Redis.Password = os.ExpandEnv(c.Redis.Password)
	c.Auth.AdminPassword = os.ExpandEnv(c.Auth.AdminPassword)
	c.Auth.AdminPasswordBcrypt = os.ExpandEnv(c.Auth.AdminPasswordBcrypt)
	c.Auth.JWTSecret = os.ExpandEnv(c.Auth.JWTSecret)
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.Server.CORSAllowedOrigins)

	c.Mongo.URI = getEnv("MONGODB_URI", c.Mongo.URI)
	c.Mongo.Database = getEnv("MONGODB_DB", c.Mongo.Database)
	c.Mongo.Migrate = getEnvBool("MONGODB_MIGRATE", c.Mongo.Migrate)

	c.Redis.Addr = strings.TrimPrefix(getEnv("REDIS_URI", c.Redis.Addr), "redis://")
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.SessionTTL = getEnvDuration("SESSION_TTL", c.Redis.SessionTTL)

	c.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.AdminPasswordBcrypt = getEnv("ADMIN_PASSWORD_BCRYPT", c.Auth.AdminPasswordBcrypt)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.SecureCookie = getEnvBool("SECURE_COOKIE", c.Auth.SecureCookie)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Development = getEnvBool("LOG_DEVELOPMENT", c.Log.Development)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.CORSAllowedOrigins == "" {
		c.Server.CORSAllowedOrigins = "*"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.SessionTTL == 0 {
		c.Redis.SessionTTL = 12 * time.Hour
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks settings the process cannot start without. Missing
// admin secrets are reported by the login endpoint instead.
func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("missing MONGODB_URI"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("missing MONGODB_DB"))
	}
	if c.Redis.SessionTTL < 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	if c.Auth.TokenTTL < 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	return errors.Join(errs...)
}

// AdminConfigured reports whether login can succeed at all
func (c *Config) AdminConfigured() bool {
	return (c.Auth.AdminPassword != "" || c.Auth.AdminPasswordBcrypt != "") && c.Auth.JWTSecret != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
