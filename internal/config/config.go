// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
}

// ServerConfig holds HTTP server settings for --serve mode.
type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	BodyLimitMB int           `mapstructure:"body_limit_mb"`
}

// OCRConfig holds settings for the OCR fallback pipeline.
type OCRConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DPI         int    `mapstructure:"dpi"`
	Language    string `mapstructure:"language"`
	PageSegMode int    `mapstructure:"psm"`
}

// Load reads configuration from environment variables with the CSP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CSP")
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.body_limit_mb", 32)

	// OCR defaults
	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.psm", 4)

	// Nested keys need explicit env bindings
	envBindings := map[string]string{
		"server.port":          "CSP_SERVER_PORT",
		"server.read_timeout":  "CSP_SERVER_READ_TIMEOUT",
		"server.body_limit_mb": "CSP_SERVER_BODY_LIMIT_MB",
		"ocr.enabled":          "CSP_OCR_ENABLED",
		"ocr.dpi":              "CSP_OCR_DPI",
		"ocr.language":         "CSP_OCR_LANGUAGE",
		"ocr.psm":              "CSP_OCR_PSM",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it unless CSP_SERVER_PORT
	// is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CSP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:        serverPort,
		ReadTimeout: v.GetDuration("server.read_timeout"),
		BodyLimitMB: v.GetInt("server.body_limit_mb"),
	}
	cfg.OCR = OCRConfig{
		Enabled:     v.GetBool("ocr.enabled"),
		DPI:         v.GetInt("ocr.dpi"),
		Language:    v.GetString("ocr.language"),
		PageSegMode: v.GetInt("ocr.psm"),
	}

	return cfg, nil
}
