package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FLEX_HUB_URL", "http://hub:7111")

	cfg, loaded, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded {
		t.Error("Expected no .env file to be loaded")
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.HubTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", cfg.HubTimeout)
	}
	if !cfg.RateLimited() || cfg.RateLimitBurst != 20 {
		t.Errorf("Unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadConfigRequiresHubURL(t *testing.T) {
	t.Setenv("FLEX_HUB_URL", "")
	os.Unsetenv("FLEX_HUB_URL")

	if _, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("Expected error without FLEX_HUB_URL")
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	t.Setenv("FLEX_HUB_URL", "")
	os.Unsetenv("FLEX_HUB_URL")
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), ".env")
	content := "FLEX_HUB_URL=http://from-file:7111\nPORT=1111\nRATE_LIMIT_RPS=0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("RATE_LIMIT_RPS")
		os.Unsetenv("FLEX_HUB_URL")
	})

	cfg, loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !loaded {
		t.Error("Expected .env file to be loaded")
	}
	if cfg.HubURL != "http://from-file:7111" {
		t.Errorf("Expected hub URL from file, got %s", cfg.HubURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("Environment should win over .env, got port %s", cfg.Port)
	}
	if cfg.RateLimited() {
		t.Error("RATE_LIMIT_RPS=0 should disable rate limiting")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"relative hub url", Config{HubURL: "localhost:7111"}, "FLEX_HUB_URL"},
		{"negative rate", Config{HubURL: "http://h", RateLimitRPS: -1}, "RATE_LIMIT_RPS"},
		{"zero burst", Config{HubURL: "http://h", RateLimitRPS: 5}, "RATE_LIMIT_BURST"},
		{"tracing without endpoint", Config{HubURL: "http://h", TracingEnabled: true}, "OTLP_ENDPOINT"},
		{"cert without key", Config{HubURL: "http://h", TLSCertFile: "cert.pem"}, "TLS_KEY_FILE"},
		{"valid", Config{HubURL: "http://h", RateLimitRPS: 5, RateLimitBurst: 5}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}
