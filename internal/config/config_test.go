package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"habitask/internal/config"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.ServerEnv, "")
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server != config.DefaultServer {
		t.Errorf("expected server %q, got %q", config.DefaultServer, cfg.Server)
	}
	if cfg.Credentials != "cookie" {
		t.Errorf("expected cookie credentials, got %q", cfg.Credentials)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Timeout)
	}
	if cfg.CookiePath() != filepath.Join(dir, "cookies.json") {
		t.Errorf("unexpected cookie path %q", cfg.CookiePath())
	}
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv(config.ServerEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
server: https://tasks.example.com
credentials: env
timeout: 15s
log_format: structured
cookie_max_age: 24h
oauth:
  token_url: https://auth.example.com/token
  client_id: cli
  scopes: [tasks]
`)

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server != "https://tasks.example.com" {
		t.Errorf("unexpected server %q", cfg.Server)
	}
	if cfg.Credentials != "env" {
		t.Errorf("unexpected credentials %q", cfg.Credentials)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.LogFormat != "structured" {
		t.Errorf("unexpected log format %q", cfg.LogFormat)
	}
	if cfg.CookieMaxAge != 24*time.Hour {
		t.Errorf("unexpected cookie max age %v", cfg.CookieMaxAge)
	}
	if !cfg.OAuth.Enabled() || cfg.OAuth.ClientID != "cli" || len(cfg.OAuth.Scopes) != 1 {
		t.Errorf("unexpected oauth config %+v", cfg.OAuth)
	}
}

func TestNew_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(config.ServerEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, "credentials: prompt\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server != config.DefaultServer {
		t.Errorf("expected default server, got %q", cfg.Server)
	}
	if cfg.CookieMaxAge != config.DefaultCookieMaxAge {
		t.Errorf("expected default cookie max age, got %v", cfg.CookieMaxAge)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server: https://file.example.com\n")
	t.Setenv(config.ServerEnv, "https://env.example.com")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server != "https://env.example.com" {
		t.Errorf("expected env server, got %q", cfg.Server)
	}
}

func TestNew_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: [not a duration\n")

	_, err := config.New(dir)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestNew_NegativeTimeout(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "timeout: -1s\n")

	_, err := config.New(dir)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		server  string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://tasks.example.com/app", false},
		{"ftp://example.com", true},
		{"localhost:8000", true},
		{"http://", true},
	}
	for _, tt := range tests {
		cfg := &config.Config{Server: tt.server}
		_, err := cfg.ServerURL()
		if (err != nil) != tt.wantErr {
			t.Errorf("ServerURL(%q): wantErr %v, got %v", tt.server, tt.wantErr, err)
		}
	}
}
