package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sonit/feedbacksite/internal/utils"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const minSecretLength = 32

// Config aggregates application settings sourced from environment variables.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

// AppConfig contains HTTP server settings.
type AppConfig struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// DatabaseConfig contains connection options for the relational store.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Name       string `mapstructure:"name"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig contains the session store connection. An empty host selects cookie sessions.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// AuthConfig contains session and token secrets.
type AuthConfig struct {
	SessionSecret  string        `mapstructure:"session_secret"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// OpenAIConfig configures the optional priority advisor.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.App.GinMode == "release"
}

// Address returns the listen address.
func (a AppConfig) Address() string {
	return fmt.Sprintf(":%d", a.Port)
}

// Address returns the Redis address.
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from environment variables (with defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := fillDevSecrets(&cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.gin_mode", "debug")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.name", "feedback")
	v.SetDefault("database.user", "feedback")
	v.SetDefault("database.password", "feedback")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "feedback.db")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", time.Hour)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"app.port":              "APP_PORT",
		"app.gin_mode":          "GIN_MODE",
		"database.driver":       "DB_DRIVER",
		"database.host":         "DB_HOST",
		"database.port":         "DB_PORT",
		"database.name":         "DB_NAME",
		"database.user":         "DB_USER",
		"database.password":     "DB_PASSWORD",
		"database.sslmode":      "DB_SSLMODE",
		"database.sqlite_path":  "SQLITE_PATH",
		"redis.host":            "REDIS_HOST",
		"redis.port":            "REDIS_PORT",
		"redis.password":        "REDIS_PASSWORD",
		"auth.session_secret":   "SESSION_SECRET",
		"auth.jwt_secret":       "JWT_SECRET",
		"auth.access_token_ttl": "ACCESS_TOKEN_TTL",
		"openai.api_key":        "OPENAI_API_KEY",
		"openai.model":          "OPENAI_MODEL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

// fillDevSecrets generates throwaway secrets outside release mode so a
// fresh checkout runs without setup. Sessions do not survive a restart.
func fillDevSecrets(cfg *Config) error {
	if cfg.IsRelease() {
		return nil
	}

	if cfg.Auth.SessionSecret == "" {
		secret, err := utils.GenerateSecret(minSecretLength)
		if err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		cfg.Auth.SessionSecret = secret
	}
	if cfg.Auth.JWTSecret == "" {
		secret, err := utils.GenerateSecret(minSecretLength)
		if err != nil {
			return fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secret
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.App.Port <= 0 {
		return errors.New("app port must be positive")
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres:
		if cfg.Database.Host == "" {
			return errors.New("database host is required")
		}
		if cfg.Database.Port <= 0 {
			return errors.New("database port must be positive")
		}
		if cfg.Database.Name == "" {
			return errors.New("database name is required")
		}
		if cfg.Database.User == "" {
			return errors.New("database user is required")
		}
	case DriverSQLite:
		if cfg.Database.SQLitePath == "" {
			return errors.New("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Redis.Host != "" && cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if len(cfg.Auth.SessionSecret) < minSecretLength {
		return fmt.Errorf("session secret must be at least %d bytes", minSecretLength)
	}
	if len(cfg.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be positive")
	}
	return nil
}
