// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"SITE_NAME", "SITE_URL", "SITE_LOGO_URL", "ASSET_VERSION", "REVALIDATE_SECONDS", "RATE_LIMIT_PER_MINUTE",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	defaults := map[string]string{
		"Host":       cfg.Host,
		"Port":       cfg.Port,
		"Env":        cfg.Env,
		"DBHost":     cfg.DBHost,
		"DBUser":     cfg.DBUser,
		"DBName":     cfg.DBName,
		"ValkeyPort": cfg.ValkeyPort,
		"SiteName":   cfg.SiteName,
		"SiteURL":    cfg.SiteURL,
	}
	want := map[string]string{
		"Host":       "0.0.0.0",
		"Port":       "8080",
		"Env":        "development",
		"DBHost":     "localhost",
		"DBUser":     "writeups",
		"DBName":     "writeups",
		"ValkeyPort": "6379",
		"SiteName":   "Writeups",
		"SiteURL":    "http://localhost:8080",
	}
	for field, w := range want {
		if got := defaults[field]; got != w {
			t.Errorf("%s: got %q, want %q", field, got, w)
		}
	}

	if cfg.RevalidateSeconds != 600 {
		t.Errorf("RevalidateSeconds: got %d, want 600", cfg.RevalidateSeconds)
	}
	if cfg.Revalidate() != 10*time.Minute {
		t.Errorf("Revalidate(): got %v", cfg.Revalidate())
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("RateLimitPerMinute: got %d, want 120", cfg.RateLimitPerMinute)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel in development: got %v, want debug", cfg.LogLevel)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() should be true by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SITE_URL", "https://writeups.example.com/")
	t.Setenv("REVALIDATE_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr(): got %q", cfg.Addr())
	}
	if cfg.SiteURL != "https://writeups.example.com" {
		t.Errorf("SiteURL should lose its trailing slash: %q", cfg.SiteURL)
	}
	if cfg.Revalidate() != 30*time.Second {
		t.Errorf("Revalidate(): got %v", cfg.Revalidate())
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel: got %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, wantErr string
	}{
		{"REVALIDATE_SECONDS", "0", "REVALIDATE_SECONDS"},
		{"REVALIDATE_SECONDS", "-5", "REVALIDATE_SECONDS"},
		{"REVALIDATE_SECONDS", "soon", "REVALIDATE_SECONDS"},
		{"RATE_LIMIT_PER_MINUTE", "1.5", "RATE_LIMIT_PER_MINUTE"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
		t.Fatalf("expected POSTGRES_PASSWORD error, got %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("production LogLevel: got %v, want info", cfg.LogLevel)
	}
	if !strings.Contains(cfg.DSN(), ":s3cret@localhost:5432/writeups") {
		t.Errorf("DSN: %q", cfg.DSN())
	}
}
