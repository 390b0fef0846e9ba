package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
	envFiles   []string
}

// NewLoader creates a loader that reads the default config file locations.
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: os.Getenv("TASKR_CONFIG"),
		envFiles:   []string{".env"},
	}
}

// WithConfigFile makes the loader read path instead of the default file.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvFiles replaces the dotenv files consulted before the environment.
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Fill unset environment variables from .env files
// 4. Override with TASKR_* environment variables
// 5. Command line flags are applied later with ApplyOverrides
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	l.loadEnvFiles()

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile() error {
	path := l.configPath
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), l.config); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Missing dotenv files are not an error; existing variables win.
func (l *Loader) loadEnvFiles() {
	for _, file := range l.envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		_ = godotenv.Load(file)
	}
}

// DefaultConfigPath returns ~/.config/taskr/config.toml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskr", "config.toml"), nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// API overrides
	BaseURL    *string
	APITimeout *time.Duration

	// Storage overrides
	DBDir      *string
	DBFilename *string

	// Display overrides
	Theme *string
	Width *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides to the configuration.
// Nil fields leave the current value unchanged.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.BaseURL != nil {
		c.API.BaseURL = *overrides.BaseURL
	}
	if overrides.APITimeout != nil {
		c.API.Timeout = *overrides.APITimeout
	}

	if overrides.DBDir != nil {
		c.Storage.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Storage.Filename = *overrides.DBFilename
	}

	if overrides.Theme != nil {
		c.Display.Theme = *overrides.Theme
	}
	if overrides.Width != nil {
		c.Display.Width = *overrides.Width
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
}
