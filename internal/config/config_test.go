package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.JavaAPIURL != "http://localhost:8090/api" {
		t.Errorf("JavaAPIURL = %q", cfg.JavaAPIURL)
	}
	if cfg.RedisURL != "" {
		t.Error("caching must be disabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9000\"\nredis_url: \"localhost:6379\"\nping_message: \"hello\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Port != "9000" || cfg.RedisURL != "localhost:6379" || cfg.PingMessage != "hello" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.JavaAPIURL != "http://localhost:8090/api" {
		t.Errorf("JavaAPIURL = %q", cfg.JavaAPIURL)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("REDIS_URI", "redis-host:6379")
	t.Setenv("VITE_JAVA_API_URL", "http://java:8090/api")
	t.Setenv("PING_MESSAGE", "ping ok")

	cfg := FromEnv(Default())

	if cfg.RedisURL != "redis-host:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.JavaAPIURL != "http://java:8090/api" {
		t.Errorf("JavaAPIURL = %q", cfg.JavaAPIURL)
	}
	if cfg.PingMessage != "ping ok" {
		t.Errorf("PingMessage = %q", cfg.PingMessage)
	}
}

func TestFromEnv_PrimaryAliasWins(t *testing.T) {
	t.Setenv("REDIS_URL", "primary:6379")
	t.Setenv("REDIS_URI", "secondary:6379")

	cfg := FromEnv(Default())
	if cfg.RedisURL != "primary:6379" {
		t.Errorf("RedisURL = %q, REDIS_URL should win over REDIS_URI", cfg.RedisURL)
	}
}
