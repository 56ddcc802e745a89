package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoad_Defaults tests loading config with nothing set.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestLoad_Defaults(t *testing.T) {
	// Arrange
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")

	// Act
	cfg, err := Load("")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("unexpected default api base url %q", cfg.APIBaseURL)
	}
	if cfg.HomeRoute != "/" {
		t.Errorf("expected home route '/', got %q", cfg.HomeRoute)
	}
	if cfg.RedirectDelay() != 2*time.Second {
		t.Errorf("expected redirect delay 2s, got %v", cfg.RedirectDelay())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected request timeout 30s, got %v", cfg.RequestTimeout())
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("expected session ttl 30m, got %v", cfg.SessionTTL())
	}
	if cfg.MaxConcurrentRequests != 5 {
		t.Errorf("expected 5 concurrent requests, got %d", cfg.MaxConcurrentRequests)
	}
}

// TestLoad_CustomPort tests loading config with custom port from environment.
func TestLoad_CustomPort(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "3000")

	// Act
	cfg, err := Load("")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}
}

// TestLoad_InvalidPort tests that invalid port falls back to default.
func TestLoad_InvalidPort(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "invalid")

	// Act
	cfg, err := Load("")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
}

// TestLoad_File tests that YAML values override defaults.
func TestLoad_File(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
port: 9090
api_base_url: https://issues.example.com/api
home_route: /home
redirect_delay_seconds: 5
secure_cookies: true
log_level: debug
`)

	// Act
	cfg, err := Load(path)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.APIBaseURL != "https://issues.example.com/api" {
		t.Errorf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.HomeRoute != "/home" {
		t.Errorf("expected home route '/home', got %q", cfg.HomeRoute)
	}
	if cfg.RedirectDelay() != 5*time.Second {
		t.Errorf("expected redirect delay 5s, got %v", cfg.RedirectDelay())
	}
	if !cfg.SecureCookies {
		t.Error("expected secure cookies")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.SessionTTLMinutes != 30 {
		t.Errorf("expected unset keys to keep defaults, got ttl %d", cfg.SessionTTLMinutes)
	}
}

// TestLoad_EnvOverridesFile tests precedence of environment over file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "port: 9090\napi_token: from-file\n")
	t.Setenv("PORT", "7070")
	t.Setenv("API_TOKEN", "from-env")

	cfg, err := Load(path)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Port)
	}
	if cfg.APIToken != "from-env" || !cfg.HasAPIToken() {
		t.Errorf("expected env token, got %q", cfg.APIToken)
	}
}

// TestLoad_ConfigFileEnv tests that CONFIG_FILE is used when no path is given.
func TestLoad_ConfigFileEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "mock_api_port: 6000\n"))

	cfg, err := Load("")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.MockAPIPort != 6000 {
		t.Errorf("expected mock api port 6000, got %d", cfg.MockAPIPort)
	}
}

// TestLoad_MissingFile tests that an unreadable file is an error.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoad_MalformedFile tests that bad YAML is an error.
func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfigFile(t, "port: [not a number\n"))

	if err == nil {
		t.Fatal("expected error for malformed file")
	}
}

// TestValidate tests rejection of unusable values.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Port = 0 }, "port out of range"},
		{"base url", func(c *Config) { c.APIBaseURL = " " }, "api_base_url is required"},
		{"home route", func(c *Config) { c.HomeRoute = "home" }, "home_route"},
		{"redirect delay", func(c *Config) { c.RedirectDelaySeconds = -1 }, "redirect_delay_seconds"},
		{"zero redirect delay", func(c *Config) { c.RedirectDelaySeconds = 0 }, "redirect_delay_seconds"},
		{"timeout", func(c *Config) { c.RequestTimeoutSeconds = 0 }, "request_timeout_seconds"},
		{"ttl", func(c *Config) { c.SessionTTLMinutes = 0 }, "session_ttl_minutes"},
		{"concurrency", func(c *Config) { c.MaxConcurrentRequests = 0 }, "max_concurrent_requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.Validate()

			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

// TestValidate_Defaults tests that defaults are valid.
func TestValidate_Defaults(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}
