// Package config loads crmctl configuration via Viper.
//
// Precedence: environment variables (CRM_*) > optional config file
// (~/.config/crmctl/config.yaml or ./crmctl.yaml) > defaults.
//
//	cfg, err := config.Load()
//	client := api.New(cfg.API.BaseURL, ...)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups all crmctl settings.
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Sandbox SandboxConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env       string // development, production
	LogLevel  string // trace, debug, info, warn, error
	LogFormat string // console, json
}

// APIConfig describes the CRM server the client talks to.
type APIConfig struct {
	BaseURL string        // e.g. http://localhost:8080/api
	Timeout time.Duration // per-request bound; a hung server never blocks forever
}

// SessionConfig controls where the login session is persisted between runs.
type SessionConfig struct {
	File string // path to the session JSON file
}

// SandboxConfig configures the local sandbox API server (crmctl sandbox).
type SandboxConfig struct {
	Addr      string // listen address
	DBDriver  string // sqlite or postgres
	DBDSN     string // driver DSN; sqlite file path or postgres URL
	JWTSecret string // token signing secret for the sandbox only
}

// Load reads configuration from env vars and the optional config file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := defaultConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:       v.GetString("env"),
			LogLevel:  v.GetString("log_level"),
			LogFormat: v.GetString("log_format"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api_url"), "/"),
			Timeout: v.GetDuration("http_timeout"),
		},
		Session: SessionConfig{
			File: v.GetString("session_file"),
		},
		Sandbox: SandboxConfig{
			Addr:      v.GetString("sandbox_addr"),
			DBDriver:  v.GetString("sandbox_db_driver"),
			DBDSN:     v.GetString("sandbox_db_dsn"),
			JWTSecret: v.GetString("sandbox_jwt_secret"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: api_url must not be empty")
	}
	if cfg.Session.File == "" {
		return nil, fmt.Errorf("config: session_file could not be resolved")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("api_url", "http://localhost:8080/api")
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("sandbox_addr", ":8080")
	v.SetDefault("sandbox_db_driver", "sqlite")
	v.SetDefault("sandbox_db_dsn", "crmctl-sandbox.db")
	v.SetDefault("sandbox_jwt_secret", "sandbox-dev-secret")

	if dir, err := defaultConfigDir(); err == nil {
		v.SetDefault("session_file", filepath.Join(dir, "session.json"))
	}
}

// defaultConfigDir is ~/.config/crmctl (or the platform equivalent).
func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "crmctl"), nil
}
