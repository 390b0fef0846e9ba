package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the Taskr client
type Config struct {
	API         APIConfig         `toml:"api"`
	Session     SessionConfig     `toml:"session"`
	Storage     StorageConfig     `toml:"storage"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL string        `toml:"base-url" env:"TASKR_API_BASE_URL"`
	Timeout time.Duration `toml:"timeout" env:"TASKR_API_TIMEOUT"`
}

// SessionConfig holds session persistence settings
type SessionConfig struct {
	TTLDays int `toml:"ttl-days" env:"TASKR_SESSION_TTL_DAYS"`
}

// StorageConfig holds local database settings
type StorageConfig struct {
	Dir            string `toml:"dir" env:"TASKR_DB_DIR"`
	Filename       string `toml:"filename" env:"TASKR_DB_FILENAME"`
	DirPermissions uint32 `toml:"dir-permissions" env:"TASKR_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds rendering settings
type DisplayConfig struct {
	// Theme forces "light" or "dark"; empty defers to the stored preference.
	Theme string `toml:"theme" env:"TASKR_THEME"`
	Width int    `toml:"width" env:"TASKR_DISPLAY_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TASKR_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TASKR_APP_VERBOSE"`
	// Environment selects the local store: development, testing or production.
	Environment string `toml:"environment" env:"TASKR_ENV"`
}

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultSessionTTLDays = 90
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			TTLDays: DefaultSessionTTLDays,
		},
		Storage: StorageConfig{
			Dir:            filepath.Join(homeDir, ".taskr"),
			Filename:       "taskr.db",
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			Width: 72,
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Environment: "production",
		},
	}
}

// GetDatabasePath returns the full path to the local database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// LoadFromEnvironment loads configuration from TASKR_* environment variables.
// Unparseable values are ignored and the previous value is kept.
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if baseURL := os.Getenv("TASKR_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("TASKR_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = ParseDurationWithFallback(timeout, c.API.Timeout)
	}

	// Session configuration
	if ttl := os.Getenv("TASKR_SESSION_TTL_DAYS"); ttl != "" {
		c.Session.TTLDays = ParseIntWithFallback(ttl, c.Session.TTLDays)
	}

	// Storage configuration
	if dir := os.Getenv("TASKR_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TASKR_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if perms := os.Getenv("TASKR_DB_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Display configuration
	if theme := os.Getenv("TASKR_THEME"); theme != "" {
		c.Display.Theme = theme
	}
	if width := os.Getenv("TASKR_DISPLAY_WIDTH"); width != "" {
		c.Display.Width = ParseIntWithFallback(width, c.Display.Width)
	}

	// Application configuration
	if timeout := os.Getenv("TASKR_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKR_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if env := os.Getenv("TASKR_ENV"); env != "" {
		c.Application.Environment = env
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "api.base_url", Message: "base URL must be an absolute http(s) URL"}
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "API timeout must be positive"}
	}

	if c.Session.TTLDays < 1 {
		return &ConfigError{Field: "session.ttl_days", Message: "session lifetime must be at least one day"}
	}

	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}

	switch strings.ToLower(c.Display.Theme) {
	case "", "light", "dark":
	default:
		return &ConfigError{Field: "display.theme", Message: "theme must be light or dark"}
	}
	if c.Display.Width < 20 {
		return &ConfigError{Field: "display.width", Message: "display width must be at least 20"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch strings.ToLower(c.Application.Environment) {
	case "development", "testing", "production":
	default:
		return &ConfigError{Field: "application.environment", Message: "environment must be development, testing or production"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
