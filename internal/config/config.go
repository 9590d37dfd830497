package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/fakeyudi/glance/internal/status"
)

// Config holds all configurable glance settings.
type Config struct {
	DismissSeconds int      `toml:"dismiss_seconds"`
	MaxHistory     int      `toml:"max_history"`
	StateFile      string   `toml:"state_file"`
	SignalNumber   int      `toml:"signal_number"` // <= 0 disables bar signalling
	Tooltip        string   `toml:"tooltip"`       // "list" | "single"
	WatchDirs      []string `toml:"watch_dirs"`
	IgnoreSuffixes []string `toml:"ignore_suffixes"`
	SettleMillis   int      `toml:"settle_millis"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"` // "console" | "json" | "" (auto)
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DismissSeconds: 10,
		MaxHistory:     10,
		StateFile:      defaultStateFile(),
		SignalNumber:   8,
		Tooltip:        string(status.TooltipList),
		WatchDirs:      []string{"~/Pictures/Screenshots", "~/Downloads"},
		IgnoreSuffixes: []string{".part", ".crdownload", ".tmp"},
		SettleMillis:   300,
		LogLevel:       "info",
	}
}

// defaultStateFile places the history in the per-user runtime directory.
func defaultStateFile() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "glance-history.json")
}

// DefaultPath returns $XDG_CONFIG_HOME/glance/config.toml, falling back to
// ~/.config/glance/config.toml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "glance", "config.toml"), nil
}

// Load reads the TOML config at path over Defaults. An empty path means
// DefaultPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		path = p
	}

	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	var err error
	if c.StateFile, err = homedir.Expand(strings.TrimSpace(c.StateFile)); err != nil {
		return fmt.Errorf("expanding state_file: %w", err)
	}
	for i, dir := range c.WatchDirs {
		if c.WatchDirs[i], err = homedir.Expand(strings.TrimSpace(dir)); err != nil {
			return fmt.Errorf("expanding watch_dirs: %w", err)
		}
	}
	c.Tooltip = strings.ToLower(strings.TrimSpace(c.Tooltip))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.DismissSeconds < 0:
		return fmt.Errorf("dismiss_seconds must be >= 0, got %d", c.DismissSeconds)
	case c.MaxHistory < 1:
		return fmt.Errorf("max_history must be >= 1, got %d", c.MaxHistory)
	case c.StateFile == "":
		return errors.New("state_file must not be empty")
	case c.SettleMillis < 0:
		return fmt.Errorf("settle_millis must be >= 0, got %d", c.SettleMillis)
	}
	switch status.TooltipMode(c.Tooltip) {
	case status.TooltipList, status.TooltipSingle:
	default:
		return fmt.Errorf("tooltip must be %q or %q, got %q", status.TooltipList, status.TooltipSingle, c.Tooltip)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// Dismiss returns the dismiss threshold.
func (c *Config) Dismiss() time.Duration {
	return time.Duration(c.DismissSeconds) * time.Second
}

// Settle returns the capture debounce window.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMillis) * time.Millisecond
}

// TooltipMode returns the configured tooltip layout.
func (c *Config) TooltipMode() status.TooltipMode {
	return status.TooltipMode(c.Tooltip)
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
