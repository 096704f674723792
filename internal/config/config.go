// Package config loads proxy configuration from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the proxy configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// RedisURL enables the proxy cache when set. Empty disables caching;
	// the proxy then passes every request through to the backend.
	RedisURL string `yaml:"redis_url"`

	// JavaAPIURL is the Java backend base URL.
	JavaAPIURL string `yaml:"java_api_url"`

	// MLAPIURL is the ML recommendation backend base URL.
	MLAPIURL string `yaml:"ml_api_url"`

	// PingMessage is echoed by /api/ping.
	PingMessage string `yaml:"ping_message"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogPretty switches from JSON to console log output.
	LogPretty bool `yaml:"log_pretty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:        "8080",
		JavaAPIURL:  "http://localhost:8090/api",
		MLAPIURL:    "http://localhost:8000/api",
		PingMessage: "pong",
		LogLevel:    "info",
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto cfg. Aliases mirror the
// frontend's build-time variables so one deployment env serves both.
func FromEnv(cfg Config) Config {
	cfg.Port = envOr(cfg.Port, "PORT")
	cfg.RedisURL = envOr(cfg.RedisURL, "REDIS_URL", "REDIS_URI")
	cfg.JavaAPIURL = envOr(cfg.JavaAPIURL, "JAVA_API_URL", "VITE_JAVA_API_URL")
	cfg.MLAPIURL = envOr(cfg.MLAPIURL, "ML_API_URL", "VITE_ML_API_URL")
	cfg.PingMessage = envOr(cfg.PingMessage, "PING_MESSAGE")
	cfg.LogLevel = envOr(cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("LOG_PRETTY"); v == "1" || v == "true" {
		cfg.LogPretty = true
	}
	return cfg
}

// envOr returns the first non-empty environment value, or fallback.
func envOr(fallback string, keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return fallback
}
