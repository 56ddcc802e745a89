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

// Config holds application configuration.
// Follows Single Responsibility - only holds configuration data.
type Config struct {
	Port int `yaml:"port"`

	// Admin API backend
	APIBaseURL string `yaml:"api_base_url"`
	// APIToken is the bearer credential used by the terminal commands.
	APIToken string `yaml:"api_token"`

	// Web session
	SessionKey        string `yaml:"session_key"`
	SecureCookies     bool   `yaml:"secure_cookies"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`

	HomeRoute             string `yaml:"home_route"`
	RedirectDelaySeconds  int    `yaml:"redirect_delay_seconds"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	MaxConcurrentRequests int    `yaml:"max_concurrent_requests"`

	LogLevel string `yaml:"log_level"`
	Dev      bool   `yaml:"dev"`

	// Local mock backend
	MockAPIPort   int    `yaml:"mock_api_port"`
	MockAPISecret string `yaml:"mock_api_secret"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:                  8080,
		APIBaseURL:            "http://localhost:5000/api",
		SessionTTLMinutes:     30,
		HomeRoute:             "/",
		RedirectDelaySeconds:  2,
		RequestTimeoutSeconds: 30,
		MaxConcurrentRequests: 5,
		LogLevel:              "info",
		MockAPIPort:           5000,
		MockAPISecret:         "dev-secret-change-me",
	}
}

// Load builds the configuration from defaults, the optional YAML file at path,
// and environment variables, in that order. An empty path falls back to CONFIG_FILE.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.APIBaseURL = getEnvOrDefault("API_BASE_URL", c.APIBaseURL)
	c.APIToken = getEnvOrDefault("API_TOKEN", c.APIToken)
	c.SessionKey = getEnvOrDefault("SESSION_KEY", c.SessionKey)
	c.SecureCookies = getEnvBool("SECURE_COOKIES", c.SecureCookies)
	c.SessionTTLMinutes = getEnvInt("SESSION_TTL_MINUTES", c.SessionTTLMinutes)
	c.HomeRoute = getEnvOrDefault("HOME_ROUTE", c.HomeRoute)
	c.RedirectDelaySeconds = getEnvInt("REDIRECT_DELAY_SECONDS", c.RedirectDelaySeconds)
	c.RequestTimeoutSeconds = getEnvInt("REQUEST_TIMEOUT_SECONDS", c.RequestTimeoutSeconds)
	c.MaxConcurrentRequests = getEnvInt("MAX_CONCURRENT_REQUESTS", c.MaxConcurrentRequests)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.Dev = getEnvBool("DEV", c.Dev)
	c.MockAPIPort = getEnvInt("MOCK_API_PORT", c.MockAPIPort)
	c.MockAPISecret = getEnvOrDefault("MOCK_API_SECRET", c.MockAPISecret)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MockAPIPort <= 0 || c.MockAPIPort > 65535 {
		errs = append(errs, fmt.Errorf("mock_api_port out of range: %d", c.MockAPIPort))
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		errs = append(errs, errors.New("api_base_url is required"))
	}
	if !strings.HasPrefix(c.HomeRoute, "/") {
		errs = append(errs, fmt.Errorf("home_route must start with '/': %q", c.HomeRoute))
	}
	if c.RedirectDelaySeconds <= 0 {
		errs = append(errs, fmt.Errorf("redirect_delay_seconds must be positive: %d", c.RedirectDelaySeconds))
	}
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout_seconds must be positive: %d", c.RequestTimeoutSeconds))
	}
	if c.SessionTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl_minutes must be positive: %d", c.SessionTTLMinutes))
	}
	if c.MaxConcurrentRequests <= 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_requests must be positive: %d", c.MaxConcurrentRequests))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// RedirectDelay returns how long the access-denied message stays before navigating home.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.RedirectDelaySeconds) * time.Second
}

// RequestTimeout returns the per-request timeout for backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns how long an idle dashboard mount is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// HasAPIToken returns true if a CLI credential is configured.
func (c *Config) HasAPIToken() bool {
	return c.APIToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when the variable is unset or not a number.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
