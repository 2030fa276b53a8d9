// Package config handles the configuration directory, config file and environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the optional TOML config filename inside the config dir.
	ConfigFile = "config.toml"

	// LogFile is the default UI log filename inside the config dir.
	LogFile = "todoctl.log"

	// DefaultAPIURL is the base address used when nothing else is configured.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultLogLevel is the CLI log level when --debug is not given.
	DefaultLogLevel = "warn"
)

// Environment variables read by Load.
const (
	EnvAPIURL      = "TODO_API_URL"
	EnvLogLevel    = "TODOCTL_LOG_LEVEL"
	EnvMetricsAddr = "TODOCTL_METRICS_ADDR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base address of the remote task store.
	APIURL string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile is where the terminal UI writes its log.
	LogFile string

	// ValidateResponses enables JSON Schema checks on server responses.
	ValidateResponses bool

	// MetricsAddr, if set, is where the UI serves /metrics.
	MetricsAddr string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml. Pointers distinguish unset keys.
type fileConfig struct {
	APIURL            string `toml:"api_url"`
	LogLevel          string `toml:"log_level"`
	LogFile           string `toml:"log_file"`
	ValidateResponses *bool  `toml:"validate_responses"`
	MetricsAddr       string `toml:"metrics_addr"`
}

// New creates a Config with defaults for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:               dir,
		APIURL:            DefaultAPIURL,
		LogLevel:          DefaultLogLevel,
		LogFile:           filepath.Join(dir, LogFile),
		ValidateResponses: true,
	}
}

// Load builds a Config from defaults, the optional config file and the
// environment, in that order of precedence.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)
	if err := cfg.loadFile(cfg.FilePath()); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// SetAPIURL overrides the base address (used by the --api-url flag).
func (c *Config) SetAPIURL(raw string) error {
	c.APIURL = strings.TrimSpace(raw)
	return c.Validate()
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api url %q: missing host", c.APIURL)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if fc.APIURL != "" {
		c.APIURL = strings.TrimSpace(fc.APIURL)
	}
	if fc.LogLevel != "" {
		c.LogLevel = strings.ToLower(fc.LogLevel)
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.ValidateResponses != nil {
		c.ValidateResponses = *fc.ValidateResponses
	}
	if fc.MetricsAddr != "" {
		c.MetricsAddr = fc.MetricsAddr
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.MetricsAddr = v
	}
}
